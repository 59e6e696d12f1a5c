package dmath

import (
	"math/big"

	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// Pow returns base^exp for real operands, rounded to env.Acc significant
// digits, dispatching across the branches spec.md §4.4 enumerates:
//
//  1. exp == 0: result is 1 (even for base == 0, matching the engine's
//     convention that 0^0 is defined).
//  2. base == 0, exp > 0: result is 0; exp < 0 is undefined.
//  3. exp is a (possibly negative) integer: exponentiation by squaring,
//     bumping internal precision when the expected result has more digits
//     than FastPowDigitThreshold.
//  4. base > 0, exp non-integer: exp(exp * ln(base)).
//  5. base < 0, exp non-integer, reduces (to precision p) to a rational
//     k/q in lowest terms with q odd: the real q-th root exists and the
//     result is |base|^exp with its sign flipped when k (the numerator) is
//     odd — i.e. sgn = (-1)^k, via |base|^exp negated accordingly.
//  6. base < 0, exp non-integer, q even (or no bounded rational recognized):
//     no real root exists; promoted to the complex branch (CPow) and the
//     caller is expected to re-dispatch; Pow itself reports
//     numerr.ErrUndefined so the expr layer can retry in C.
//  7. base == 0, exp == 0 handled by branch 1 (0^0 := 1).
func Pow(base, exp decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	b := decimal.WithAcc(base, p)
	e := decimal.WithAcc(exp, p)

	if e.IsZero() {
		return one(env.Acc), nil
	}
	if b.IsZero() {
		if e.Sign() > 0 {
			return zero(env.Acc), nil
		}
		return decimal.Decimal{}, numerr.Mathf("zero raised to a negative power is undefined", numerr.ErrUndefined)
	}

	if n, ok := asInt(e); ok {
		threshold := int64(env.FastPowDigitThreshold)
		workPrec := p
		if n > threshold || n < -threshold {
			workPrec = p + 9
		}
		r, err := intPow(decimal.WithAcc(b, workPrec), n, workPrec, env, "pow")
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.WithAcc(r, env.Acc), nil
	}

	if b.Sign() > 0 {
		lnB, err := Ln(b, env)
		if err != nil {
			return decimal.Decimal{}, err
		}
		product, err := decimal.Mul(e, lnB)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return Exp(product, env)
	}

	if numerator, ok := oddDenominatorRoot(e, p); ok {
		absB := decimal.Abs(b)
		lnB, err := Ln(absB, env)
		if err != nil {
			return decimal.Decimal{}, err
		}
		product, err := decimal.Mul(e, lnB)
		if err != nil {
			return decimal.Decimal{}, err
		}
		mag, err := Exp(product, env)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if numerator%2 != 0 {
			mag = decimal.Neg(mag)
		}
		return mag, nil
	}

	return decimal.Decimal{}, numerr.Mathf("negative base with non-integer exponent has no real result", numerr.ErrUndefined)
}

// asInt reports whether d is an exact integer and returns its int64 value.
func asInt(d decimal.Decimal) (int64, bool) {
	if d.IsZero() {
		return 0, true
	}
	if d.Power() < 0 {
		return 0, false
	}
	n := d.Mantissa()
	if d.Power() > 0 {
		n = new(big.Int).Mul(n, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Power())), nil))
	}
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// oddDenominatorRoot reports whether e, to precision p, reduces to a rational
// k/q in lowest terms with a bounded, odd denominator q — the condition
// spec.md §4.4 branch 5 requires for a negative base to have a real q-th
// root — returning the numerator k whose parity fixes the result's sign
// (sgn = (-1)^k). q is found as the smallest m for which e*m is exactly an
// integer, which is the reduced denominator; an even q there means no real
// root exists at all, regardless of any larger bounded m. This is a
// best-effort heuristic (spec.md §9 Open Question: exact rational
// recognition from a terminating decimal is inherently approximate beyond a
// bounded denominator search).
func oddDenominatorRoot(e decimal.Decimal, p uint) (int64, bool) {
	const maxDenominator = 1000
	for q := int64(1); q <= maxDenominator; q++ {
		scaled, err := decimal.Mul(e, decimal.FromInt64(q, p))
		if err != nil {
			continue
		}
		if k, ok := asInt(scaled); ok {
			if q%2 == 0 {
				return 0, false
			}
			return k, true
		}
	}
	return 0, false
}

// CPow returns base^exp for complex operands via exp(exp*ln(base))
// (spec.md §4.4 branch 7), handling base == 0 specially since CLn rejects it.
func CPow(base, exp decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	if exp.Re.IsZero() && exp.Im.IsZero() {
		return decimal.FromReal(one(env.Acc)), nil
	}
	if base.Re.IsZero() && base.Im.IsZero() {
		if exp.Re.Sign() > 0 {
			return decimal.FromReal(zero(env.Acc)), nil
		}
		return decimal.ComplexDecimal{}, numerr.Mathf("zero raised to a non-positive complex power is undefined", numerr.ErrUndefined)
	}
	lnBase, err := CLn(base, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	product, err := decimal.CMul(exp, lnBase)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return CExp(product, env)
}
