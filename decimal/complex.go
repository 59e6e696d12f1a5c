// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import (
	"regexp"
	"strings"

	"github.com/db47h/numexpr/numerr"
)

// ComplexDecimal is an immutable pair (Re, Im) of Decimals sharing a
// declared precision acc = min(Re.Acc(), Im.Acc()). Both components are
// normalized independently.
type ComplexDecimal struct {
	Re, Im Decimal
}

// FromReal lifts a Decimal to a ComplexDecimal with a zero imaginary part.
func FromReal(re Decimal) ComplexDecimal {
	return ComplexDecimal{Re: re, Im: Decimal{acc: re.acc}}
}

// FromComponents builds a ComplexDecimal from independent real and imaginary
// parts, re-rounding both to their shared precision min(re.Acc(), im.Acc()).
func FromComponents(re, im Decimal) ComplexDecimal {
	acc := re.Acc()
	if im.Acc() < acc {
		acc = im.Acc()
	}
	return ComplexDecimal{Re: WithAcc(re, acc), Im: WithAcc(im, acc)}
}

// IsReal reports whether z's imaginary part is exactly zero.
func (z ComplexDecimal) IsReal() bool { return z.Im.IsZero() }

// Acc returns z's shared significant-digit budget.
func (z ComplexDecimal) Acc() uint { return z.Re.Acc() }

// String renders z in algebraic form a, bi, or a±bi (spec.md §4.2).
func (z ComplexDecimal) String() string {
	s, _ := FormatComplexAlgebraic(z, ModeAuto, z.Acc(), DefaultAutoSwitch, DefaultMaxOutputLen)
	return s
}

// FormatComplexAlgebraic renders z as a, bi, or a±bi, eliding a ±1
// coefficient to ±i.
func FormatComplexAlgebraic(z ComplexDecimal, mode FormatMode, outAcc uint, autoSwitch, maxOutputLen int) (string, error) {
	if z.IsReal() {
		return Format(z.Re, mode, outAcc, autoSwitch, maxOutputLen)
	}
	im := z.Im
	var imStr string
	switch {
	case Equal(im, FromInt64(1, im.Acc())):
		imStr = "i"
	case Equal(im, FromInt64(-1, im.Acc())):
		imStr = "-i"
	default:
		s, err := Format(im, mode, outAcc, autoSwitch, maxOutputLen)
		if err != nil {
			return "", err
		}
		imStr = s + "i"
	}
	if z.Re.IsZero() {
		return imStr, nil
	}
	reStr, err := Format(z.Re, mode, outAcc, autoSwitch, maxOutputLen)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(imStr, "-") {
		return reStr + imStr, nil
	}
	return reStr + "+" + imStr, nil
}

// FormatComplexPolar renders z as |z|[toPolar]arg(z), parenthesizing a
// negative or exponent-form argument; when the argument is zero, only the
// modulus is printed.
func FormatComplexPolar(mod, arg Decimal, mode FormatMode, outAcc uint, autoSwitch, maxOutputLen int) (string, error) {
	modStr, err := Format(mod, mode, outAcc, autoSwitch, maxOutputLen)
	if err != nil {
		return "", err
	}
	if arg.IsZero() {
		return modStr, nil
	}
	argStr, err := Format(arg, mode, outAcc, autoSwitch, maxOutputLen)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(argStr, "-") || strings.ContainsAny(argStr, "Ee") {
		argStr = "(" + argStr + ")"
	}
	return modStr + "[toPolar]" + argStr, nil
}

const realTermPattern = `[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`
const imagTermPattern = `[+-]?(?:(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?\*?[ijIJ]|[ijIJ]\*?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?|[ijIJ])`

var complexPattern = regexp.MustCompile(
	`^(?:(` + realTermPattern + `)(` + imagTermPattern + `)?|(` + imagTermPattern + `)(` + realTermPattern + `)?)$`,
)

// ParseComplex parses s as a complex literal in algebraic form (spec.md §4.2,
// §6): at most one real term and at most one imaginary term, in either
// order, with the matched terms' concatenation equal to the sanitized input.
func ParseComplex(s string, acc uint) (ComplexDecimal, error) {
	cleaned := stripSeparators(s)
	m := complexPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return ComplexDecimal{}, numerr.Complexf("malformed complex literal", numerr.ErrInputFormat)
	}

	var realPart, imagPart string
	if m[1] != "" || m[2] != "" {
		realPart, imagPart = m[1], m[2]
	} else {
		imagPart, realPart = m[3], m[4]
	}

	re := Decimal{acc: uint32(acc)}
	im := Decimal{acc: uint32(acc)}
	var err error
	if realPart != "" {
		re, err = Parse(realPart, acc)
		if err != nil {
			return ComplexDecimal{}, err
		}
	}
	if imagPart != "" {
		im, err = parseImagMagnitude(imagPart, acc)
		if err != nil {
			return ComplexDecimal{}, err
		}
	}
	if realPart == "" && imagPart == "" {
		return ComplexDecimal{}, numerr.Complexf("empty complex literal", numerr.ErrInputFormat)
	}
	return FromComponents(re, im), nil
}

// parseImagMagnitude parses one matched imagTermPattern occurrence (e.g.
// "+4i", "-i*3", "i", "-i") into its signed Decimal coefficient.
func parseImagMagnitude(s string, acc uint) (Decimal, error) {
	sign := "+"
	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		sign = string(rest[0])
		rest = rest[1:]
	}
	if rest == "" {
		return Decimal{}, numerr.Complexf("malformed imaginary term", numerr.ErrInputFormat)
	}
	if isUnit(rest[0]) && len(rest) == 1 {
		return Parse(sign+"1", acc)
	}
	if isUnit(rest[len(rest)-1]) {
		num := rest[:len(rest)-1]
		num = strings.TrimSuffix(num, "*")
		return Parse(sign+num, acc)
	}
	if isUnit(rest[0]) {
		num := rest[1:]
		num = strings.TrimPrefix(num, "*")
		return Parse(sign+num, acc)
	}
	return Decimal{}, numerr.Complexf("malformed imaginary term", numerr.ErrInputFormat)
}

func isUnit(b byte) bool {
	switch b {
	case 'i', 'I', 'j', 'J':
		return true
	}
	return false
}
