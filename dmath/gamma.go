package dmath

import (
	"math/big"

	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// lanczosG is the Lanczos approximation's g parameter for the canonical
// g=7, n=9 coefficient set used at every tier (see lanczosTier in
// constants.go for why the tiers currently coincide).
const lanczosG = 7

var lanczosCoeffs = [9]string{
	"0.99999999999980993",
	"676.5203681218851",
	"-1259.1392167224028",
	"771.32342877765313",
	"-176.61502916214059",
	"12.507343278686905",
	"-0.13857109526572012",
	"0.0000099843695780195716",
	"0.00000015056327351493116",
}

// Fact returns n! for a non-negative integer n (spec.md §4.4), computed by
// binary-splitting the product range [1, n] so that every multiplication
// combines two operands of comparable bit length — the standard
// divide-and-conquer factorial strategy, as opposed to a naive left-to-right
// running product whose multiplicand sizes grow unevenly.
//
// n is capped by env.MaxFactorialN; exceeding it returns
// numerr.ErrFactorialRange.
func Fact(n uint64, env Env) (decimal.Decimal, error) {
	if env.MaxFactorialN != 0 && n > env.MaxFactorialN {
		return decimal.Decimal{}, numerr.Mathf("factorial argument exceeds the configured limit", numerr.ErrFactorialRange)
	}
	if n < 2 {
		return one(env.Acc), nil
	}
	product := binarySplitFactorial(1, n)
	return decimal.WithAcc(decimal.FromBigInt(product, env.Acc+9), env.Acc), nil
}

// binarySplitFactorial returns the product lo*(lo+1)*...*hi.
func binarySplitFactorial(lo, hi uint64) *big.Int {
	if lo > hi {
		return big.NewInt(1)
	}
	if lo == hi {
		return new(big.Int).SetUint64(lo)
	}
	if hi-lo == 1 {
		return new(big.Int).Mul(new(big.Int).SetUint64(lo), new(big.Int).SetUint64(hi))
	}
	mid := lo + (hi-lo)/2
	left := binarySplitFactorial(lo, mid)
	right := binarySplitFactorial(mid+1, hi)
	return left.Mul(left, right)
}

// Gamma returns Gamma(x) for a real x, rounded to env.Acc significant
// digits, via factorial for a positive integer x, the reflection formula
// Gamma(x) = pi/(sin(pi*x)*Gamma(1-x)) for x < 0.5, and the Lanczos series
// otherwise (spec.md §4.4). It returns numerr.ErrUndefined at the
// non-positive integers, Gamma's poles.
func Gamma(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)

	if n, ok := asInt(wide); ok {
		if n <= 0 {
			return decimal.Decimal{}, numerr.Mathf("gamma function has a pole at a non-positive integer", numerr.ErrUndefined)
		}
		return Fact(uint64(n-1), env)
	}

	half, _ := decimal.Parse("0.5", p)
	if decimal.Cmp(wide, half) < 0 {
		oneD := one(p)
		oneMinusX, err := decimal.Sub(oneD, wide)
		if err != nil {
			return decimal.Decimal{}, err
		}
		gOneMinusX, err := Gamma(oneMinusX, env)
		if err != nil {
			return decimal.Decimal{}, err
		}
		piX, err := decimal.Mul(Pi(p), wide)
		if err != nil {
			return decimal.Decimal{}, err
		}
		sinPiX, err := Sin(piX, env)
		if err != nil {
			return decimal.Decimal{}, err
		}
		denom, err := decimal.Mul(sinPiX, gOneMinusX)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if denom.IsZero() {
			return decimal.Decimal{}, numerr.Mathf("gamma function has a pole at a non-positive integer", numerr.ErrUndefined)
		}
		r, err := decimal.Quo(Pi(p), denom)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.WithAcc(r, env.Acc), nil
	}

	return lanczosApprox(wide, p, env)
}

// lanczosApprox evaluates the Lanczos series for Gamma(z), z >= 0.5.
func lanczosApprox(z decimal.Decimal, p uint, env Env) (decimal.Decimal, error) {
	_ = lanczosTier(env.Acc) // selects among (currently identical) tiers; see constants.go
	zm1, err := decimal.Sub(z, one(p))
	if err != nil {
		return decimal.Decimal{}, err
	}

	x, err := decimal.Parse(lanczosCoeffs[0], p)
	if err != nil {
		return decimal.Decimal{}, err
	}
	for i := 1; i < len(lanczosCoeffs); i++ {
		ci, err := decimal.Parse(lanczosCoeffs[i], p)
		if err != nil {
			return decimal.Decimal{}, err
		}
		denom, err := decimal.Add(zm1, decimal.FromInt64(int64(i), p))
		if err != nil {
			return decimal.Decimal{}, err
		}
		term, err := decimal.Quo(ci, denom)
		if err != nil {
			return decimal.Decimal{}, err
		}
		x, err = decimal.Add(x, term)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}

	g := decimal.FromInt64(lanczosG, p)
	halfD, _ := decimal.Parse("0.5", p)
	t, err := decimal.Add(zm1, g)
	if err != nil {
		return decimal.Decimal{}, err
	}
	t, err = decimal.Add(t, halfD)
	if err != nil {
		return decimal.Decimal{}, err
	}

	lnT, err := Ln(t, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	zHalf, err := decimal.Add(zm1, halfD)
	if err != nil {
		return decimal.Decimal{}, err
	}
	exponent, err := decimal.Mul(zHalf, lnT)
	if err != nil {
		return decimal.Decimal{}, err
	}
	tPow, err := Exp(exponent, env)
	if err != nil {
		return decimal.Decimal{}, err
	}

	negT := decimal.Neg(t)
	eNegT, err := Exp(negT, env)
	if err != nil {
		return decimal.Decimal{}, err
	}

	twoPi, err := decimal.Quo(one(p), InvTwoPi(p))
	if err != nil {
		return decimal.Decimal{}, err
	}
	sqrtTwoPi, err := Sqrt(twoPi, env)
	if err != nil {
		return decimal.Decimal{}, err
	}

	result, err := decimal.Mul(sqrtTwoPi, tPow)
	if err != nil {
		return decimal.Decimal{}, err
	}
	result, err = decimal.Mul(result, eNegT)
	if err != nil {
		return decimal.Decimal{}, err
	}
	result, err = decimal.Mul(result, x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(result, env.Acc), nil
}
