package dmath

import (
	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// Ln returns the natural logarithm of x, rounded to env.Acc significant
// digits. It implements spec.md §4.4's two-stage range reduction: scale x by
// 10^k into (0,1], then by 1.2^j into [0.9,1.1), then apply
// ln y = 2*artanh((y-1)/(y+1)) and recompose
// ln x = 2*artanh(z) + k*ln10 + j*ln1.2.
//
// x must be strictly positive; Ln returns numerr.ErrUndefined otherwise,
// matching the real-valued logarithm's domain.
func Ln(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	if x.Sign() <= 0 {
		return decimal.Decimal{}, numerr.Mathf("logarithm of a non-positive value", numerr.ErrUndefined)
	}
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)

	// Stage 1: scale by 10^k so the result lies in (0,1]. k = digit count +
	// power of x's normalized mantissa.
	k := int64(wide.Power()) + int64(digitCountOf(wide))
	y, err := decimal.FromParts(wide.Mantissa(), wide.Power()-int32(k), p)
	if err != nil {
		return decimal.Decimal{}, err
	}

	// Stage 2: scale by 1.2^j so y lands in [0.9, 1.1).
	lo, _ := decimal.Parse("0.9", p)
	hi, _ := decimal.Parse("1.1", p)
	oneTwo, _ := decimal.Parse("1.2", p)
	invOneTwo, err := decimal.Quo(one(p), oneTwo)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var j int64
	limit := int64(env.iterCap())
	for decimal.Cmp(y, hi) >= 0 {
		y, err = decimal.Mul(y, invOneTwo)
		if err != nil {
			return decimal.Decimal{}, err
		}
		j++
		if j > limit {
			env.Warn.warn("ln", "1.2^j range reduction did not converge")
			return decimal.Decimal{}, numerr.Mathf("logarithm range reduction failed to converge", numerr.ErrUnreliable)
		}
	}
	for decimal.Cmp(y, lo) < 0 {
		y, err = decimal.Mul(y, oneTwo)
		if err != nil {
			return decimal.Decimal{}, err
		}
		j--
		if -j > limit {
			env.Warn.warn("ln", "1.2^j range reduction did not converge")
			return decimal.Decimal{}, numerr.Mathf("logarithm range reduction failed to converge", numerr.ErrUnreliable)
		}
	}

	num, err := decimal.Sub(y, one(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	den, err := decimal.Add(y, one(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	z, err := decimal.Quo(num, den)
	if err != nil {
		return decimal.Decimal{}, err
	}

	at, err := artanhTaylor(z, p, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	lnY, err := decimal.Mul(two(p), at)
	if err != nil {
		return decimal.Decimal{}, err
	}

	kTerm, err := decimal.Mul(decimal.FromInt64(k, p), Ln10(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	jTerm, err := decimal.Mul(decimal.FromInt64(j, p), Ln1_2(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	sum, err := decimal.Add(lnY, kTerm)
	if err != nil {
		return decimal.Decimal{}, err
	}
	sum, err = decimal.Add(sum, jTerm)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(sum, env.Acc), nil
}

// digitCountOf returns the number of significant decimal digits in d's
// mantissa (0 for a zero Decimal).
func digitCountOf(d decimal.Decimal) int {
	if d.IsZero() {
		return 0
	}
	s := d.Mantissa().Text(10)
	if s[0] == '-' {
		return len(s) - 1
	}
	return len(s)
}

// artanhTaylor sums artanh(z) = z + z^3/3 + z^5/5 + ... for |z| < 0.1053 (the
// range guaranteed by Ln's stage-2 reduction), following the same bounded-sum
// convergence convention as expTaylor.
func artanhTaylor(z decimal.Decimal, p uint, env Env) (decimal.Decimal, error) {
	if z.IsZero() {
		return zero(p), nil
	}
	z2, err := decimal.Mul(z, z)
	if err != nil {
		return decimal.Decimal{}, err
	}
	term := z
	sum := z
	epsilon := epsilonAt(p)
	limit := env.iterCap()
	for k := uint(1); k <= limit; k++ {
		term, err = decimal.Mul(term, z2)
		if err != nil {
			return decimal.Decimal{}, err
		}
		denom := decimal.FromInt64(int64(2*k+1), p)
		add, err := decimal.Quo(term, denom)
		if err != nil {
			return decimal.Decimal{}, err
		}
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
	env.Warn.warn("ln", "artanh series did not converge within the iteration cap")
	return decimal.Decimal{}, numerr.Mathf("logarithm series failed to converge", numerr.ErrUnreliable)
}

// Lg returns the base-10 logarithm of x.
func Lg(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	lnX, err := Ln(x, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	p := env.guardPrec()
	r, err := decimal.Quo(decimal.WithAcc(lnX, p), Ln10(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// Log returns the base-b logarithm of x.
func Log(x, base decimal.Decimal, env Env) (decimal.Decimal, error) {
	if base.Sign() <= 0 || decimal.Equal(base, one(base.Acc())) {
		return decimal.Decimal{}, numerr.Mathf("logarithm base must be positive and not equal to 1", numerr.ErrUndefined)
	}
	lnX, err := Ln(x, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	p := env.guardPrec()
	lnB, err := Ln(decimal.WithAcc(base, p), env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	r, err := decimal.Quo(decimal.WithAcc(lnX, p), lnB)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// CLn returns the principal natural logarithm of a complex z: ln|z| + i*arg(z)
// (spec.md §4.4). z must not be the complex zero.
func CLn(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	mod, arg, err := polarOf(z, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	lnMod, err := Ln(mod, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.FromComponents(lnMod, arg), nil
}
