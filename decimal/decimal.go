// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import (
	"math/big"

	"github.com/db47h/numexpr/numerr"
)

// MinPower and MaxPower bound the decimal exponent that a normalized Decimal
// may carry. They are generous safety rails, not a mathematical limit: a
// Config narrows them further via MinInputExponent/MaxInputExponent (see
// package dconfig).
const (
	MinPower int32 = -(1 << 30)
	MaxPower int32 = 1 << 30
)

// DefaultAcc is the significant-digit budget used by constructors that are
// not explicitly given one (mirrors db47h/decimal's DefaultDecimalPrec).
const DefaultAcc uint = 34

// Decimal is the unique representation of a decimal value as
//
//	sign × mantissa × 10**power
//
// A nonzero Decimal has mantissa != 0 with no trailing zero digit
// (mantissa mod 10 != 0); acc bounds the digit count of |mantissa|. Zero has
// the canonical form (mantissa=0, power=0). The zero value of Decimal is
// itself a valid representation of 0 with acc 0.
//
// Decimal is immutable: every constructor and every operation in this module
// returns a freshly allocated value.
type Decimal struct {
	mantissa *big.Int
	power    int32
	acc      uint32
}

// Acc returns d's significant-digit budget.
func (d Decimal) Acc() uint { return uint(d.acc) }

// Sign returns -1, 0 or +1 depending on the sign of d.
func (d Decimal) Sign() int {
	if d.mantissa == nil {
		return 0
	}
	return d.mantissa.Sign()
}

// IsZero reports whether d is the decimal value 0.
func (d Decimal) IsZero() bool { return d.Sign() == 0 }

// bigMantissa returns d's mantissa, never nil.
func (d Decimal) bigMantissa() *big.Int {
	if d.mantissa == nil {
		return new(big.Int)
	}
	return d.mantissa
}

// Power returns the decimal exponent of d, i.e. d's mantissa digit string
// shifted left by Power() decimal places gives d's value.
func (d Decimal) Power() int32 { return d.power }

// Mantissa returns a copy of d's raw mantissa.
func (d Decimal) Mantissa() *big.Int { return new(big.Int).Set(d.bigMantissa()) }

var (
	bigTen = big.NewInt(10)
	bigTwo = big.NewInt(2)
)

// digitCount returns the number of decimal digits in |x| (0 has digit count
// 0, matching the convention that a canonical zero mantissa carries no
// digits).
func digitCount(x *big.Int) int {
	if x.Sign() == 0 {
		return 0
	}
	// x.Text(10) always produces the shortest decimal representation with no
	// leading zeros, so its length (minus an optional sign) is the digit
	// count. This is adequate for our purposes; roundAndNormalize only calls
	// this to size the rounding divisor, which does not need to be fast.
	s := x.Text(10)
	if s[0] == '-' {
		return len(s) - 1
	}
	return len(s)
}

// pow10 returns 10**e for e >= 0.
func pow10(e int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(e)), nil)
}

// roundAndNormalize implements spec.md §4.1's round_and_normalize: it rounds
// |mantissa| to at most acc significant digits using banker's rounding
// (round-half-to-even) on the first dropped position, trims any trailing
// zero digits the rounding step may have produced, and applies the
// underflow/overflow rules. mantissa is consumed (not retained) by the
// caller's choice of ownership; this function never mutates it in place.
func roundAndNormalize(mantissa *big.Int, power int32, acc uint32) (Decimal, error) {
	if mantissa == nil || mantissa.Sign() == 0 {
		return Decimal{acc: acc}, nil
	}

	neg := mantissa.Sign() < 0
	m := new(big.Int).Abs(mantissa)

	if l := digitCount(m); acc > 0 && l > int(acc) {
		d := l - int(acc)
		D := pow10(d)
		q, r := new(big.Int).QuoRem(m, D, new(big.Int))
		h := new(big.Int).Rsh(D, 1) // D/2 (D is always a power of 10, hence even for d>=1)
		switch r.Cmp(h) {
		case 1: // r > h
			q.Add(q, big.NewInt(1))
		case 0: // r == h: round to even
			if q.Bit(0) == 1 {
				q.Add(q, big.NewInt(1))
			}
		}
		m = q
		power += int32(d)
	}

	// Trim any trailing zero digits, whether original or introduced by
	// rounding up to the next power of ten.
	for m.Sign() != 0 {
		_, r := new(big.Int).QuoRem(m, bigTen, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		m.Quo(m, bigTen)
		power++
	}

	if m.Sign() == 0 {
		return Decimal{acc: acc}, nil
	}

	// Underflow: values below the threshold collapse to zero silently.
	if int64(power)+int64(acc) < int64(MinPower) {
		return Decimal{acc: acc}, nil
	}
	if power > MaxPower {
		return Decimal{}, numerr.Decimalf("result exponent out of range", numerr.ErrOverflow)
	}

	if neg {
		m.Neg(m)
	}
	return Decimal{mantissa: m, power: power, acc: acc}, nil
}

// FromParts constructs a Decimal from a raw mantissa and power, rounding and
// normalizing the result to acc significant digits.
func FromParts(mantissa *big.Int, power int32, acc uint) (Decimal, error) {
	return roundAndNormalize(mantissa, power, uint32(acc))
}

// FromInt64 returns the Decimal value of v, rounded to acc significant
// digits.
func FromInt64(v int64, acc uint) Decimal {
	d, _ := roundAndNormalize(big.NewInt(v), 0, uint32(acc))
	return d
}

// FromBigInt returns the Decimal value of v, rounded to acc significant
// digits.
func FromBigInt(v *big.Int, acc uint) Decimal {
	d, _ := roundAndNormalize(new(big.Int).Set(v), 0, uint32(acc))
	return d
}

// WithAcc returns d re-rounded to a new significant-digit budget.
func WithAcc(d Decimal, acc uint) Decimal {
	r, _ := roundAndNormalize(d.bigMantissa(), d.power, uint32(acc))
	return r
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y
//	+1 if x >  y
func Cmp(x, y Decimal) int {
	xm, ym, _ := align(x, y)
	return xm.Cmp(ym)
}

// align scales the mantissa of the operand with the larger power up so both
// mantissas are expressed at the smaller of the two powers; it returns the
// (possibly rescaled) mantissas and the shared power.
func align(x, y Decimal) (xm, ym *big.Int, shared int32) {
	xp, yp := x.power, y.power
	xMant, yMant := x.bigMantissa(), y.bigMantissa()
	switch {
	case xp == yp:
		return new(big.Int).Set(xMant), new(big.Int).Set(yMant), xp
	case xp < yp:
		scaled := new(big.Int).Mul(yMant, pow10(int(yp-xp)))
		return new(big.Int).Set(xMant), scaled, xp
	default:
		scaled := new(big.Int).Mul(xMant, pow10(int(xp-yp)))
		return scaled, new(big.Int).Set(yMant), yp
	}
}
