package dmath

import (
	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// Sqrt returns the non-negative square root of x, rounded to env.Acc
// significant digits. x must be non-negative (spec.md §4.4: real sqrt of a
// negative value is undefined; callers wanting i*sqrt(-x) go through the
// complex path instead).
//
// The algorithm follows the teacher's approach (db47h-decimal/decsqrt.go):
// range-reduce x into roughly [0.01, 100) by an even power-of-ten shift, seed
// a guess from that reduced value, then refine with Newton's method on
// f(t) = 1/t^2 - x, which avoids a division in the iteration step, before a
// single final division recovers sqrt(x).
func Sqrt(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	if x.Sign() < 0 {
		return decimal.Decimal{}, numerr.Mathf("square root of a negative value", numerr.ErrUndefined)
	}
	if x.IsZero() {
		return zero(env.Acc), nil
	}
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)

	shift := int32(digitCountOf(wide)) + wide.Power()
	if shift%2 != 0 {
		shift--
	}
	reduced, err := decimal.FromParts(wide.Mantissa(), wide.Power()-shift, p)
	if err != nil {
		return decimal.Decimal{}, err
	}

	guess, err := seedInverseSqrt(reduced, p)
	if err != nil {
		return decimal.Decimal{}, err
	}

	threeD := decimal.FromInt64(3, p)
	halfD, _ := decimal.Parse("0.5", p)
	epsilon := epsilonAt(p)
	limit := env.iterCap()
	for i := uint(0); i < limit; i++ {
		t2, err := decimal.Mul(guess, guess)
		if err != nil {
			return decimal.Decimal{}, err
		}
		xt2, err := decimal.Mul(reduced, t2)
		if err != nil {
			return decimal.Decimal{}, err
		}
		inner, err := decimal.Sub(threeD, xt2)
		if err != nil {
			return decimal.Decimal{}, err
		}
		next, err := decimal.Mul(guess, inner)
		if err != nil {
			return decimal.Decimal{}, err
		}
		next, err = decimal.Mul(next, halfD)
		if err != nil {
			return decimal.Decimal{}, err
		}
		diff, err := decimal.Sub(next, guess)
		if err != nil {
			return decimal.Decimal{}, err
		}
		guess = next
		if decimal.Cmp(decimal.Abs(diff), epsilon) <= 0 {
			break
		}
		if i == limit-1 {
			env.Warn.warn("sqrt", "Newton iteration for 1/sqrt did not converge")
			return decimal.Decimal{}, numerr.Mathf("square root iteration failed to converge", numerr.ErrUnreliable)
		}
	}

	sqrtReduced, err := decimal.Mul(reduced, guess)
	if err != nil {
		return decimal.Decimal{}, err
	}
	result, err := decimal.FromParts(sqrtReduced.Mantissa(), sqrtReduced.Power()+shift/2, p)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(result, env.Acc), nil
}

// seedInverseSqrt returns a float64-derived initial guess for 1/sqrt(x),
// valid for x already range-reduced into roughly [0.01, 100).
func seedInverseSqrt(x decimal.Decimal, p uint) (decimal.Decimal, error) {
	f, err := decimalToFloat(x)
	if err != nil || f <= 0 {
		return decimal.Parse("1", p)
	}
	return decimal.FromFloat64(1/sqrtFloat(f), p)
}

// Cbrt returns the real cube root of x (defined for any sign, unlike Sqrt),
// via Newton's method on f(t) = t^3 - x.
func Cbrt(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	if x.IsZero() {
		return zero(env.Acc), nil
	}
	p := env.guardPrec()
	neg := x.Sign() < 0
	wide := decimal.WithAcc(decimal.Abs(x), p)

	f, err := decimalToFloat(wide)
	if err != nil {
		return decimal.Decimal{}, err
	}
	guess, err := decimal.FromFloat64(cbrtFloat(f), p)
	if err != nil {
		return decimal.Decimal{}, err
	}

	threeD := decimal.FromInt64(3, p)
	epsilon := epsilonAt(p)
	limit := env.iterCap()
	for i := uint(0); i < limit; i++ {
		g2, err := decimal.Mul(guess, guess)
		if err != nil {
			return decimal.Decimal{}, err
		}
		g3, err := decimal.Mul(g2, guess)
		if err != nil {
			return decimal.Decimal{}, err
		}
		num, err := decimal.Add(g3, g3)
		if err != nil {
			return decimal.Decimal{}, err
		}
		num, err = decimal.Add(num, wide)
		if err != nil {
			return decimal.Decimal{}, err
		}
		den, err := decimal.Mul(threeD, g2)
		if err != nil {
			return decimal.Decimal{}, err
		}
		next, err := decimal.Quo(num, den)
		if err != nil {
			return decimal.Decimal{}, err
		}
		diff, err := decimal.Sub(next, guess)
		if err != nil {
			return decimal.Decimal{}, err
		}
		guess = next
		if decimal.Cmp(decimal.Abs(diff), epsilon) <= 0 {
			break
		}
		if i == limit-1 {
			env.Warn.warn("cbrt", "Newton iteration for cube root did not converge")
			return decimal.Decimal{}, numerr.Mathf("cube root iteration failed to converge", numerr.ErrUnreliable)
		}
	}
	if neg {
		guess = decimal.Neg(guess)
	}
	return decimal.WithAcc(guess, env.Acc), nil
}

// CSqrt returns the principal square root of a complex z, via Pow(z, 0.5).
func CSqrt(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	half, _ := decimal.Parse("0.5", env.guardPrec())
	return CPow(z, decimal.FromReal(half), env)
}

// CCbrt returns the principal cube root of a complex z, via Pow(z, 1/3).
func CCbrt(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	p := env.guardPrec()
	third, err := decimal.Quo(one(p), decimal.FromInt64(3, p))
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return CPow(z, decimal.FromReal(third), env)
}
