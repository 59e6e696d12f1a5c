package dmath

import (
	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// polarOf returns (|z|, arg z) for a complex z, with arg in (-pi, pi]
// (spec.md §4.2's toPolar form). It returns numerr.ErrUndefined for the
// complex zero, whose argument is conventionally undefined.
func polarOf(z decimal.ComplexDecimal, env Env) (decimal.Decimal, decimal.Decimal, error) {
	p := env.guardPrec()
	re := decimal.WithAcc(z.Re, p)
	im := decimal.WithAcc(z.Im, p)

	if re.IsZero() && im.IsZero() {
		return decimal.Decimal{}, decimal.Decimal{}, numerr.Mathf("argument of the complex zero is undefined", numerr.ErrUndefined)
	}

	re2, err := decimal.Mul(re, re)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	im2, err := decimal.Mul(im, im)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	sumSq, err := decimal.Add(re2, im2)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	mod, err := Sqrt(sumSq, env)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	var arg decimal.Decimal
	switch {
	case re.IsZero():
		half, err := decimal.Quo(Pi(p), two(p))
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		if im.Sign() < 0 {
			half = decimal.Neg(half)
		}
		arg = half
	case re.Sign() > 0:
		ratio, err := decimal.Quo(im, re)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		arg, err = Arctan(ratio, env)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
	default: // re < 0
		ratio, err := decimal.Quo(im, re)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		base, err := Arctan(ratio, env)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		if im.Sign() >= 0 {
			arg, err = decimal.Add(base, Pi(p))
		} else {
			arg, err = decimal.Sub(base, Pi(p))
		}
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
	}

	return decimal.WithAcc(mod, env.Acc), decimal.WithAcc(arg, env.Acc), nil
}

// ToPolar returns (modulus, argument) for z, the pair spec.md §4.2 renders as
// modulus[toPolar]argument.
func ToPolar(z decimal.ComplexDecimal, env Env) (decimal.Decimal, decimal.Decimal, error) {
	return polarOf(z, env)
}

// CAbs returns |z| for a complex z.
func CAbs(z decimal.ComplexDecimal, env Env) (decimal.Decimal, error) {
	if z.IsReal() {
		return decimal.Abs(z.Re), nil
	}
	mod, _, err := polarOf(z, env)
	return mod, err
}

// CArg returns arg(z) for a complex z, in (-pi, pi]. It returns
// numerr.ErrUndefined for the complex zero.
func CArg(z decimal.ComplexDecimal, env Env) (decimal.Decimal, error) {
	_, arg, err := polarOf(z, env)
	return arg, err
}

// CSgn returns z/|z| for a nonzero complex z, or the complex zero for z == 0
// (spec.md §4.3's complex sign convention).
func CSgn(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	if z.Re.IsZero() && z.Im.IsZero() {
		return decimal.FromReal(zero(env.Acc)), nil
	}
	mod, err := CAbs(z, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	re, err := decimal.Quo(z.Re, mod)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	im, err := decimal.Quo(z.Im, mod)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.FromComponents(re, im), nil
}
