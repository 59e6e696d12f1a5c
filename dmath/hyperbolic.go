package dmath

import (
	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// Sinh returns sinh(x) = (e^x - e^-x)/2 (spec.md §4.4).
func Sinh(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	ex, err := Exp(wide, Env{Acc: p, IterationGuard: env.IterationGuard, Warn: env.Warn})
	if err != nil {
		return decimal.Decimal{}, err
	}
	enx, err := decimal.Quo(one(p), ex)
	if err != nil {
		return decimal.Decimal{}, err
	}
	diff, err := decimal.Sub(ex, enx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r, err := decimal.Quo(diff, two(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// Cosh returns cosh(x) = (e^x + e^-x)/2.
func Cosh(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	ex, err := Exp(wide, Env{Acc: p, IterationGuard: env.IterationGuard, Warn: env.Warn})
	if err != nil {
		return decimal.Decimal{}, err
	}
	enx, err := decimal.Quo(one(p), ex)
	if err != nil {
		return decimal.Decimal{}, err
	}
	sum, err := decimal.Add(ex, enx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r, err := decimal.Quo(sum, two(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// Tanh returns tanh(x) = sinh(x)/cosh(x).
func Tanh(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	s, err := Sinh(x, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	c, err := Cosh(x, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.Quo(s, c)
}

// Asinh returns asinh(x) = ln(x + sqrt(x^2+1)).
func Asinh(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	x2, err := decimal.Mul(wide, wide)
	if err != nil {
		return decimal.Decimal{}, err
	}
	inner, err := decimal.Add(x2, one(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	s, err := Sqrt(inner, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	sum, err := decimal.Add(wide, s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r, err := Ln(sum, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// Acosh returns acosh(x) = ln(x + sqrt(x^2-1)) for x >= 1.
func Acosh(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	if decimal.Cmp(x, one(x.Acc())) < 0 {
		return decimal.Decimal{}, numerr.Mathf("inverse hyperbolic cosine argument out of domain", numerr.ErrUndefined)
	}
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	x2, err := decimal.Mul(wide, wide)
	if err != nil {
		return decimal.Decimal{}, err
	}
	inner, err := decimal.Sub(x2, one(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	s, err := Sqrt(inner, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	sum, err := decimal.Add(wide, s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r, err := Ln(sum, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// Atanh returns atanh(x) = 0.5*ln((1+x)/(1-x)) for x in (-1, 1).
func Atanh(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	if decimal.Cmp(decimal.Abs(x), one(x.Acc())) >= 0 {
		return decimal.Decimal{}, numerr.Mathf("inverse hyperbolic tangent argument out of domain", numerr.ErrUndefined)
	}
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	num, err := decimal.Add(one(p), wide)
	if err != nil {
		return decimal.Decimal{}, err
	}
	den, err := decimal.Sub(one(p), wide)
	if err != nil {
		return decimal.Decimal{}, err
	}
	ratio, err := decimal.Quo(num, den)
	if err != nil {
		return decimal.Decimal{}, err
	}
	lnr, err := Ln(ratio, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r, err := decimal.Quo(lnr, two(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// CSinh returns sinh(z) for a complex z, via
// sinh(a+bi) = sinh(a)cos(b) + i*cosh(a)sin(b).
func CSinh(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	sha, err := Sinh(z.Re, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	cha, err := Cosh(z.Re, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	cb, err := Cos(z.Im, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	sb, err := Sin(z.Im, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	re, err := decimal.Mul(sha, cb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	im, err := decimal.Mul(cha, sb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.FromComponents(re, im), nil
}

// CCosh returns cosh(z) for a complex z, via
// cosh(a+bi) = cosh(a)cos(b) + i*sinh(a)sin(b).
func CCosh(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	sha, err := Sinh(z.Re, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	cha, err := Cosh(z.Re, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	cb, err := Cos(z.Im, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	sb, err := Sin(z.Im, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	re, err := decimal.Mul(cha, cb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	im, err := decimal.Mul(sha, sb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.FromComponents(re, im), nil
}
