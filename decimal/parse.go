// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/db47h/numexpr/numerr"
)

// DefaultMaxInputLen is the input length ceiling used by Parse. Callers that
// want a different limit (e.g. one sourced from a Config) should use
// ParseLimited directly.
const DefaultMaxInputLen = 1 << 12

// literalPattern matches the decimal literal grammar from spec.md §6:
//
//	decimal := sign? ( int ('.' int?)? | '.' int ) (('e'|'E') sign? int)?
//
// after whitespace and '_' have been stripped.
var literalPattern = regexp.MustCompile(`^([+-]?)(?:(\d+)(?:\.(\d*))?|\.(\d+))([eE]([+-]?\d+))?$`)

// Parse parses s as a decimal literal (spec.md §6 grammar) and rounds the
// result to acc significant digits, using DefaultMaxInputLen as the input
// length ceiling.
func Parse(s string, acc uint) (Decimal, error) {
	return ParseLimited(s, acc, DefaultMaxInputLen)
}

// ParseLimited is like Parse but rejects input longer than maxLen runes,
// matching Config.MaxInputLen when called from the expression evaluator.
func ParseLimited(s string, acc uint, maxLen int) (Decimal, error) {
	cleaned := stripSeparators(s)
	if len(cleaned) > maxLen {
		return Decimal{}, numerr.Decimalf("literal exceeds maximum input length", numerr.ErrInputTooLong)
	}
	m := literalPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return Decimal{}, numerr.Decimalf("malformed decimal literal", numerr.ErrInputFormat)
	}

	neg := m[1] == "-"
	intPart, fracPart := m[2], m[3]
	var digits string
	var scale int
	if intPart != "" || fracPart != "" {
		digits = intPart + fracPart
		scale = len(fracPart)
	} else {
		digits = m[4]
		scale = len(m[4])
	}
	if digits == "" {
		digits = "0"
	}

	power := int64(-scale)
	if m[5] != "" {
		e, err := strconv.ParseInt(m[6], 10, 32)
		if err != nil {
			return Decimal{}, numerr.Decimalf("exponent out of range", numerr.ErrInputRange)
		}
		power += e
	}
	if power < int64(MinPower)*2 || power > int64(MaxPower)*2 {
		return Decimal{}, numerr.Decimalf("exponent out of range", numerr.ErrInputRange)
	}

	mantissa, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, numerr.Decimalf("malformed decimal literal", numerr.ErrInputFormat)
	}
	if neg {
		mantissa.Neg(mantissa)
	}
	return roundAndNormalize(mantissa, int32(power), uint32(acc))
}

// stripSeparators removes whitespace and '_' characters, which the grammar
// permits anywhere inside a literal.
func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f', '_':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FromFloat64 converts a machine float to a Decimal at acc significant
// digits. Non-finite floats (NaN, +-Inf) fail, since this engine has no
// non-finite sentinel (spec.md Non-goals). The float is converted via its
// exponential string form and reparsed, so the result is the exact decimal
// value of the IEEE-754 bit pattern rounded to acc digits, not a "nice"
// decimal approximation.
func FromFloat64(f float64, acc uint) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, numerr.Decimalf("non-finite float64 has no decimal representation", numerr.ErrInputFormat)
	}
	return Parse(strconv.FormatFloat(f, 'e', -1, 64), acc)
}
