package dmath

import (
	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// Arctan returns arctan(x), rounded to env.Acc significant digits (spec.md
// §4.4). Large |x| is halved repeatedly via
// arctan(x) = 2*arctan(x/(1+sqrt(1+x^2))) until the halved argument is small
// enough for the Taylor series to converge quickly, then the halvings are
// undone by doubling the partial result.
func Arctan(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	if wide.IsZero() {
		return zero(env.Acc), nil
	}
	neg := wide.Sign() < 0
	y := decimal.Abs(wide)

	threshold, _ := decimal.Parse("0.1", p)
	var halvings int
	limit := env.iterCap()
	for decimal.Cmp(y, threshold) > 0 {
		y2, err := decimal.Mul(y, y)
		if err != nil {
			return decimal.Decimal{}, err
		}
		inner, err := decimal.Add(one(p), y2)
		if err != nil {
			return decimal.Decimal{}, err
		}
		s, err := Sqrt(inner, Env{Acc: p, IterationGuard: env.IterationGuard, Warn: env.Warn})
		if err != nil {
			return decimal.Decimal{}, err
		}
		den, err := decimal.Add(one(p), s)
		if err != nil {
			return decimal.Decimal{}, err
		}
		y, err = decimal.Quo(y, den)
		if err != nil {
			return decimal.Decimal{}, err
		}
		halvings++
		if halvings > int(limit) {
			env.Warn.warn("arctan", "halving reduction did not converge")
			return decimal.Decimal{}, numerr.Mathf("arctan halving reduction failed to converge", numerr.ErrUnreliable)
		}
	}

	result, err := arctanTaylor(y, p, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	for i := 0; i < halvings; i++ {
		result, err = decimal.Add(result, result)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}
	if neg {
		result = decimal.Neg(result)
	}
	return decimal.WithAcc(result, env.Acc), nil
}

// arctanTaylor sums arctan(x) = x - x^3/3 + x^5/5 - ... for |x| <= 0.1, the
// range guaranteed by Arctan's halving reduction.
func arctanTaylor(x decimal.Decimal, p uint, env Env) (decimal.Decimal, error) {
	if x.IsZero() {
		return zero(p), nil
	}
	x2, err := decimal.Mul(x, x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	term := x
	sum := x
	epsilon := epsilonAt(p)
	limit := env.iterCap()
	sign := -1
	for k := uint(1); k <= limit; k++ {
		term, err = decimal.Mul(term, x2)
		if err != nil {
			return decimal.Decimal{}, err
		}
		denom := decimal.FromInt64(int64(2*k+1), p)
		add, err := decimal.Quo(term, denom)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if sign < 0 {
			add = decimal.Neg(add)
		}
		sign = -sign
		next, err := decimal.Add(sum, add)
		if err != nil {
			return decimal.Decimal{}, err
		}
		diff, err := decimal.Sub(next, sum)
		if err != nil {
			return decimal.Decimal{}, err
		}
		sum = next
		if decimal.Cmp(decimal.Abs(diff), epsilon) <= 0 {
			return sum, nil
		}
	}
	env.Warn.warn("arctan", "series did not converge within the iteration cap")
	return decimal.Decimal{}, numerr.Mathf("arctan series failed to converge", numerr.ErrUnreliable)
}

// Arcsin returns arcsin(x) for x in [-1, 1], via the identity
// arcsin(x) = arg(sqrt(1-x^2) + i*x) (spec.md §4.4).
func Arcsin(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	if decimal.Cmp(decimal.Abs(x), one(x.Acc())) > 0 {
		return decimal.Decimal{}, numerr.Mathf("arcsine argument out of domain", numerr.ErrUndefined)
	}
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	x2, err := decimal.Mul(wide, wide)
	if err != nil {
		return decimal.Decimal{}, err
	}
	inner, err := decimal.Sub(one(p), x2)
	if err != nil {
		return decimal.Decimal{}, err
	}
	re, err := Sqrt(inner, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	_, arg, err := polarOf(decimal.ComplexDecimal{Re: re, Im: wide}, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(arg, env.Acc), nil
}

// Arccos returns arccos(x) for x in [-1, 1], via arccos(x) = pi/2 - arcsin(x).
func Arccos(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	asin, err := Arcsin(x, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	halfPi, err := decimal.Quo(Pi(p), two(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	r, err := decimal.Sub(halfPi, decimal.WithAcc(asin, p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// CArctan returns arctan(z) for a complex z, via
// arctan(z) = (i/2)*(ln(1-iz) - ln(1+iz)).
func CArctan(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	iz := decimal.ComplexDecimal{Re: decimal.Neg(z.Im), Im: z.Re}
	num, err := decimal.CSub(decimal.FromReal(one(env.Acc)), iz)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	den, err := decimal.CAdd(decimal.FromReal(one(env.Acc)), iz)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	lnNum, err := CLn(num, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	lnDen, err := CLn(den, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	diff, err := decimal.CSub(lnNum, lnDen)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	// multiply by i/2: (a+bi)*(i/2) = -b/2 + (a/2)i
	half, _ := decimal.Parse("0.5", env.Acc)
	reHalf, err := decimal.Mul(diff.Re, half)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	imHalf, err := decimal.Mul(diff.Im, half)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.FromComponents(decimal.Neg(imHalf), reHalf), nil
}
