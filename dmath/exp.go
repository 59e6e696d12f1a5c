package dmath

import (
	"math/big"

	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// Exp returns e^x, rounded to env.Acc significant digits (spec.md §4.4).
//
// x is split into an integer part n and a fractional remainder f with
// |f| < 1; e^x = E()^n * expTaylor(f), following the teacher's guard-digit
// convention (db47h/decimal/math/exp.go: work at prec+guard, round down at
// the end) rather than the teacher's unimplemented Newton-on-Log scaffold.
// spec.md §4.4 additionally scales the fractional part by computing
// (e^(f/10))^10 to shrink the Taylor argument before summing; since |f| is
// already < 1 here, expTaylor converges well within env.iterCap() without
// that extra halving step, so it is not applied.
func Exp(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	if wide.IsZero() {
		return one(env.Acc), nil
	}

	n := decimal.Floor(wide)
	f, err := decimal.Sub(wide, n)
	if err != nil {
		return decimal.Decimal{}, err
	}

	frac, err := expTaylor(f, p, env, "exp")
	if err != nil {
		return decimal.Decimal{}, err
	}

	nInt := n.Mantissa()
	if n.Power() > 0 {
		nInt.Mul(nInt, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Power())), nil))
	}
	if !nInt.IsInt64() {
		return decimal.Decimal{}, numerr.Mathf("exponent too large for integer power path", numerr.ErrOverflow)
	}
	whole, err := intPow(E(p), nInt.Int64(), p, env, "exp")
	if err != nil {
		return decimal.Decimal{}, err
	}
	result, err := decimal.Mul(whole, frac)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(result, env.Acc), nil
}

// expTaylor sums the series e^f = sum f^k/k! until the running sum stops
// changing at precision p, capped at env.iterCap() terms (spec.md §4.4,
// grounded on db47h/decimal/math/exp.go's expm1T convergence loop).
func expTaylor(f decimal.Decimal, p uint, env Env, op string) (decimal.Decimal, error) {
	if f.IsZero() {
		return one(p), nil
	}
	sum := one(p)
	term := one(p)
	epsilon := epsilonAt(p)
	limit := env.iterCap()
	for k := uint(1); k <= limit; k++ {
		var err error
		term, err = decimal.Mul(term, f)
		if err != nil {
			return decimal.Decimal{}, err
		}
		term, err = decimal.Quo(term, decimal.FromInt64(int64(k), p))
		if err != nil {
			return decimal.Decimal{}, err
		}
		next, err := decimal.Add(sum, term)
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
	env.Warn.warn(op, "exponential series did not converge within the iteration cap")
	return decimal.Decimal{}, numerr.Mathf("exponential series failed to converge", numerr.ErrUnreliable)
}

// intPow returns base^n for an integer n (possibly negative), via
// exponentiation by squaring, rounded at precision p.
func intPow(base decimal.Decimal, n int64, p uint, env Env, op string) (decimal.Decimal, error) {
	if n == 0 {
		return one(p), nil
	}
	neg := n < 0
	if neg {
		n = -n
	}
	result := one(p)
	b := base
	for n > 0 {
		if n&1 == 1 {
			var err error
			result, err = decimal.Mul(result, b)
			if err != nil {
				return decimal.Decimal{}, err
			}
			result = decimal.WithAcc(result, p)
		}
		n >>= 1
		if n > 0 {
			var err error
			b, err = decimal.Mul(b, b)
			if err != nil {
				return decimal.Decimal{}, err
			}
			b = decimal.WithAcc(b, p)
		}
	}
	if neg {
		if result.IsZero() {
			return decimal.Decimal{}, numerr.Mathf("integer power underflowed to zero before inversion", numerr.ErrUnreliable)
		}
		return decimal.Quo(one(p), result)
	}
	return result, nil
}

// epsilonAt returns 10^-p, the convergence threshold for a series truncated
// at p significant digits.
func epsilonAt(p uint) decimal.Decimal {
	d, _ := decimal.FromParts(decimal.FromInt64(1, p).Mantissa(), -int32(p), p)
	return d
}

// CExp returns e^z for a complex z, via e^a*(cos b + i sin b) (spec.md §4.4).
func CExp(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	ea, err := Exp(z.Re, env)
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
	re, err := decimal.Mul(ea, cb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	im, err := decimal.Mul(ea, sb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.FromComponents(re, im), nil
}
