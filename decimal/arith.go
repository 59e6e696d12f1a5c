// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import (
	"math/big"

	"github.com/db47h/numexpr/numerr"
)

// absorbTolerance is the number of extra digits beyond acc+5 below which an
// operand is considered negligible and absorbed during Add/Sub, following
// spec.md §4.3.
const absorbTolerance = 2

func resultAcc(x, y Decimal) uint32 {
	if x.acc > y.acc {
		return x.acc
	}
	return y.acc
}

// Add returns the rounded sum x+y.
func Add(x, y Decimal) (Decimal, error) {
	acc := resultAcc(x, y)
	if negligible(x, y, acc) {
		return roundAndNormalize(y.bigMantissa(), y.power, acc)
	}
	if negligible(y, x, acc) {
		return roundAndNormalize(x.bigMantissa(), x.power, acc)
	}
	xm, ym, p := align(x, y)
	return roundAndNormalize(xm.Add(xm, ym), p, acc)
}

// Sub returns the rounded difference x-y.
func Sub(x, y Decimal) (Decimal, error) {
	return Add(x, Neg(y))
}

// Neg returns -x.
func Neg(x Decimal) Decimal {
	if x.IsZero() {
		return x
	}
	return Decimal{mantissa: new(big.Int).Neg(x.bigMantissa()), power: x.power, acc: x.acc}
}

// negligible reports whether y is far enough below x's precision (acc
// significant digits) that x+y rounds to x exactly: the gap in decimal
// exponent between the two operands exceeds acc+5, leaving no overlap
// between y's digits and the acc digits kept around x's most significant
// digit.
func negligible(small, big_ Decimal, acc uint32) bool {
	if small.IsZero() || big_.IsZero() {
		return false
	}
	// digit position of big_'s least significant kept digit once rounded to
	// acc digits.
	bigLSD := big_.power + int32(digitCount(big_.bigMantissa())) - int32(acc)
	gap := bigLSD - (small.power + int32(digitCount(small.bigMantissa())))
	return gap > int32(acc)+5+absorbTolerance
}

// Mul returns the rounded product x*y.
func Mul(x, y Decimal) (Decimal, error) {
	acc := resultAcc(x, y)
	if x.IsZero() || y.IsZero() {
		return Decimal{acc: acc}, nil
	}
	m := new(big.Int).Mul(x.bigMantissa(), y.bigMantissa())
	return roundAndNormalize(m, x.power+y.power, acc)
}

// Quo returns the rounded quotient x/y. It returns numerr.ErrDivByZero if y
// is zero.
func Quo(x, y Decimal) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, numerr.Decimalf("division by zero", numerr.ErrDivByZero)
	}
	acc := resultAcc(x, y)
	if x.IsZero() {
		return Decimal{acc: acc}, nil
	}
	dxm, dym := digitCount(x.bigMantissa()), digitCount(y.bigMantissa())
	s := int(acc) + dym - dxm + 4
	if s < 0 {
		s = 0
	}
	num := new(big.Int).Mul(x.bigMantissa(), pow10(s))
	q := new(big.Int).Quo(num, y.bigMantissa())
	return roundAndNormalize(q, x.power-y.power-int32(s), acc)
}

// Mod returns a - b*floor(a/b), so the result shares the sign of b.
func Mod(a, b Decimal) (Decimal, error) {
	if b.IsZero() {
		return Decimal{}, numerr.Decimalf("modulo by zero", numerr.ErrDivByZero)
	}
	q, err := Quo(a, b)
	if err != nil {
		return Decimal{}, err
	}
	fq := Floor(WithAcc(q, q.Acc()+10))
	prod, err := Mul(fq, b)
	if err != nil {
		return Decimal{}, err
	}
	return Sub(a, prod)
}

// Floor returns the greatest integer Decimal <= x.
func Floor(x Decimal) Decimal {
	if x.IsZero() || x.power >= 0 {
		return x
	}
	shift := -int(x.power)
	D := pow10(shift)
	q := new(big.Int).Div(x.bigMantissa(), D) // Euclidean division: floor for D > 0
	d, _ := roundAndNormalize(q, 0, x.acc)
	return d
}

// Ceil returns the smallest integer Decimal >= x.
func Ceil(x Decimal) Decimal {
	return Neg(Floor(Neg(x)))
}

// Abs returns |x|.
func Abs(x Decimal) Decimal {
	if x.Sign() < 0 {
		return Neg(x)
	}
	return x
}

// Sgn returns -1, 0 or 1 as a Decimal, matching x's sign.
func Sgn(x Decimal) Decimal {
	return FromInt64(int64(x.Sign()), x.Acc())
}

// Equal reports whether x and y denote the same numeric value.
func Equal(x, y Decimal) bool { return Cmp(x, y) == 0 }
