// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import "github.com/db47h/numexpr/numerr"

// CAdd returns x+y componentwise.
func CAdd(x, y ComplexDecimal) (ComplexDecimal, error) {
	re, err := Add(x.Re, y.Re)
	if err != nil {
		return ComplexDecimal{}, err
	}
	im, err := Add(x.Im, y.Im)
	if err != nil {
		return ComplexDecimal{}, err
	}
	return FromComponents(re, im), nil
}

// CSub returns x-y componentwise.
func CSub(x, y ComplexDecimal) (ComplexDecimal, error) {
	return CAdd(x, CNeg(y))
}

// CNeg returns -x.
func CNeg(x ComplexDecimal) ComplexDecimal {
	return ComplexDecimal{Re: Neg(x.Re), Im: Neg(x.Im)}
}

// CMul returns (a+bi)(c+di) = (ac-bd)+(ad+bc)i.
func CMul(x, y ComplexDecimal) (ComplexDecimal, error) {
	ac, err := Mul(x.Re, y.Re)
	if err != nil {
		return ComplexDecimal{}, err
	}
	bd, err := Mul(x.Im, y.Im)
	if err != nil {
		return ComplexDecimal{}, err
	}
	ad, err := Mul(x.Re, y.Im)
	if err != nil {
		return ComplexDecimal{}, err
	}
	bc, err := Mul(x.Im, y.Re)
	if err != nil {
		return ComplexDecimal{}, err
	}
	re, err := Sub(ac, bd)
	if err != nil {
		return ComplexDecimal{}, err
	}
	im, err := Add(ad, bc)
	if err != nil {
		return ComplexDecimal{}, err
	}
	return FromComponents(re, im), nil
}

// CQuo returns x/y = x*conj(y)/|y|^2, reducing to two real divisions
// (spec.md §4.3). It returns numerr.ErrUndefined if y is the complex zero.
func CQuo(x, y ComplexDecimal) (ComplexDecimal, error) {
	if y.Re.IsZero() && y.Im.IsZero() {
		return ComplexDecimal{}, numerr.Complexf("division by the complex zero", numerr.ErrUndefined)
	}
	cc, err := Mul(y.Re, y.Re)
	if err != nil {
		return ComplexDecimal{}, err
	}
	dd, err := Mul(y.Im, y.Im)
	if err != nil {
		return ComplexDecimal{}, err
	}
	denom, err := Add(cc, dd)
	if err != nil {
		return ComplexDecimal{}, err
	}
	ac, err := Mul(x.Re, y.Re)
	if err != nil {
		return ComplexDecimal{}, err
	}
	bd, err := Mul(x.Im, y.Im)
	if err != nil {
		return ComplexDecimal{}, err
	}
	numRe, err := Add(ac, bd)
	if err != nil {
		return ComplexDecimal{}, err
	}
	bc, err := Mul(x.Im, y.Re)
	if err != nil {
		return ComplexDecimal{}, err
	}
	ad, err := Mul(x.Re, y.Im)
	if err != nil {
		return ComplexDecimal{}, err
	}
	numIm, err := Sub(bc, ad)
	if err != nil {
		return ComplexDecimal{}, err
	}
	re, err := Quo(numRe, denom)
	if err != nil {
		return ComplexDecimal{}, err
	}
	im, err := Quo(numIm, denom)
	if err != nil {
		return ComplexDecimal{}, err
	}
	return FromComponents(re, im), nil
}

// CFloor applies Floor to each component independently.
func CFloor(x ComplexDecimal) ComplexDecimal {
	return ComplexDecimal{Re: Floor(x.Re), Im: Floor(x.Im)}
}

// CCeil applies Ceil to each component independently.
func CCeil(x ComplexDecimal) ComplexDecimal {
	return ComplexDecimal{Re: Ceil(x.Re), Im: Ceil(x.Im)}
}

// Conj returns the complex conjugate (re, -im).
func Conj(x ComplexDecimal) ComplexDecimal {
	return ComplexDecimal{Re: x.Re, Im: Neg(x.Im)}
}

// CRe extracts the real part.
func CRe(x ComplexDecimal) Decimal { return x.Re }

// CIm extracts the imaginary part.
func CIm(x ComplexDecimal) Decimal { return x.Im }

// CEqual reports whether x and y denote the same complex value.
func CEqual(x, y ComplexDecimal) bool {
	return Equal(x.Re, y.Re) && Equal(x.Im, y.Im)
}
