package dmath

import (
	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// Sin returns sin(x), rounded to env.Acc significant digits. x is range
// reduced using the 1/(2*pi) constant (spec.md §4.4: multiplying by 1/(2*pi)
// and taking the fractional part avoids a division by the much larger pi),
// then the reduced angle's sine/cosine pair is obtained from a Taylor series
// around zero and folded back up via the triple-angle identity.
func Sin(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	s, _, err := sinCosReduced(x, env)
	return s, err
}

// Cos returns cos(x), rounded to env.Acc significant digits.
func Cos(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	_, c, err := sinCosReduced(x, env)
	return c, err
}

// Tan returns tan(x) = sin(x)/cos(x). It returns numerr.ErrUndefined if
// cos(x) rounds to zero.
func Tan(x decimal.Decimal, env Env) (decimal.Decimal, error) {
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	s, c, err := sinCosReduced(wide, Env{Acc: p, IterationGuard: env.IterationGuard, Warn: env.Warn})
	if err != nil {
		return decimal.Decimal{}, err
	}
	if c.IsZero() {
		return decimal.Decimal{}, numerr.Mathf("tangent undefined at an odd multiple of pi/2", numerr.ErrUndefined)
	}
	r, err := decimal.Quo(s, c)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.WithAcc(r, env.Acc), nil
}

// sinCosReduced computes (sin x, cos x) by reducing x to r = x - n*2*pi with
// |r/(2*pi)| < 1/6 (so the Taylor series around that sixth-turn converges in
// a handful of terms), then uses the triple-angle identities
//
//	sin(3t) = 3sin(t) - 4sin(t)^3
//	cos(3t) = 4cos(t)^3 - 3cos(t)
//
// applied twice (a ninefold angle) to fold the small-angle series result back
// up to the full reduced angle, per spec.md §4.4.
func sinCosReduced(x decimal.Decimal, env Env) (decimal.Decimal, decimal.Decimal, error) {
	p := env.guardPrec()
	wide := decimal.WithAcc(x, p)
	if wide.IsZero() {
		return zero(env.Acc), one(env.Acc), nil
	}

	if decimal.Cmp(decimal.Abs(wide), MaxReducibleAngle(p)) > 0 {
		return decimal.Decimal{}, decimal.Decimal{}, numerr.Mathf("argument exceeds the precision of the stored 1/(2*pi) constant", numerr.ErrUnreliable)
	}

	invTwoPi := InvTwoPi(p)
	turns, err := decimal.Mul(wide, invTwoPi)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	n := decimal.Floor(turns)
	frac, err := decimal.Sub(turns, n)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	// frac in [0,1); fold into [-0.5,0.5) to keep the series argument small.
	half, _ := decimal.Parse("0.5", p)
	if decimal.Cmp(frac, half) >= 0 {
		frac, err = decimal.Sub(frac, one(p))
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
	}
	twoPi, err := decimal.Quo(one(p), invTwoPi)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	reduced, err := decimal.Mul(frac, twoPi)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	ninth, err := decimal.Quo(reduced, decimal.FromInt64(9, p))
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	s, c, err := sinCosTaylor(ninth, p, env)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	s, c, err = tripleAngle(s, c, p)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	s, c, err = tripleAngle(s, c, p)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	return decimal.WithAcc(s, env.Acc), decimal.WithAcc(c, env.Acc), nil
}

// sinCosTaylor sums the Maclaurin series for sin/cos simultaneously, sharing
// the running power of t.
func sinCosTaylor(t decimal.Decimal, p uint, env Env) (decimal.Decimal, decimal.Decimal, error) {
	sinSum := t
	cosSum := one(p)
	termS := t
	termC := one(p)
	t2, err := decimal.Mul(t, t)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	epsilon := epsilonAt(p)
	limit := env.iterCap()
	for k := uint(1); k <= limit; k++ {
		// cos term: termC *= -t^2/((2k-1)(2k))
		termC, err = decimal.Mul(termC, t2)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		denomC := decimal.FromInt64(int64((2*k-1)*(2*k)), p)
		termC, err = decimal.Quo(termC, denomC)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		termC = decimal.Neg(termC)
		nextC, err := decimal.Add(cosSum, termC)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}

		// sin term: termS *= -t^2/((2k)(2k+1))
		termS, err = decimal.Mul(termS, t2)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		denomS := decimal.FromInt64(int64((2*k)*(2*k+1)), p)
		termS, err = decimal.Quo(termS, denomS)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		termS = decimal.Neg(termS)
		nextS, err := decimal.Add(sinSum, termS)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}

		diffC, err := decimal.Sub(nextC, cosSum)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		diffS, err := decimal.Sub(nextS, sinSum)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		sinSum, cosSum = nextS, nextC
		if decimal.Cmp(decimal.Abs(diffC), epsilon) <= 0 && decimal.Cmp(decimal.Abs(diffS), epsilon) <= 0 {
			return sinSum, cosSum, nil
		}
	}
	env.Warn.warn("sin/cos", "Taylor series did not converge within the iteration cap")
	return decimal.Decimal{}, decimal.Decimal{}, numerr.Mathf("trigonometric series failed to converge", numerr.ErrUnreliable)
}

// tripleAngle returns (sin 3t, cos 3t) given (sin t, cos t).
func tripleAngle(s, c decimal.Decimal, p uint) (decimal.Decimal, decimal.Decimal, error) {
	s3, err := decimal.Mul(s, s)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	s3, err = decimal.Mul(s3, s)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	c3, err := decimal.Mul(c, c)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	c3, err = decimal.Mul(c3, c)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	threeS, err := decimal.Mul(decimal.FromInt64(3, p), s)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	fourS3, err := decimal.Mul(decimal.FromInt64(4, p), s3)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	sinOut, err := decimal.Sub(threeS, fourS3)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	fourC3, err := decimal.Mul(decimal.FromInt64(4, p), c3)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	threeC, err := decimal.Mul(decimal.FromInt64(3, p), c)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	cosOut, err := decimal.Sub(fourC3, threeC)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	return sinOut, cosOut, nil
}

// CSin returns sin(z) for a complex z, via
// sin(a+bi) = sin(a)cosh(b) + i*cos(a)sinh(b).
func CSin(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	sa, err := Sin(z.Re, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	ca, err := Cos(z.Re, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	chb, err := Cosh(z.Im, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	shb, err := Sinh(z.Im, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	re, err := decimal.Mul(sa, chb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	im, err := decimal.Mul(ca, shb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.FromComponents(re, im), nil
}

// CCos returns cos(z) for a complex z, via
// cos(a+bi) = cos(a)cosh(b) - i*sin(a)sinh(b).
func CCos(z decimal.ComplexDecimal, env Env) (decimal.ComplexDecimal, error) {
	sa, err := Sin(z.Re, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	ca, err := Cos(z.Re, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	chb, err := Cosh(z.Im, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	shb, err := Sinh(z.Im, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	re, err := decimal.Mul(ca, chb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	im, err := decimal.Mul(sa, shb)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.FromComponents(re, decimal.Neg(im)), nil
}
