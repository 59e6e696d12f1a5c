// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import (
	"strconv"
	"strings"

	"github.com/db47h/numexpr/numerr"
)

// FormatMode selects the stringification mode used by Format (spec.md
// §4.1/§6).
type FormatMode int

const (
	// ModeNormal reconstructs the value by digit shifting, e.g. "314.0".
	ModeNormal FormatMode = iota
	// ModeScientific emits D.DDDDE±N (or DE±N for a single-digit mantissa).
	ModeScientific
	// ModeAuto picks ModeScientific when the magnitude of digit-count+power
	// exceeds DefaultAutoSwitch, ModeNormal otherwise.
	ModeAuto
)

// DefaultAutoSwitch is the threshold used by ModeAuto when no explicit
// threshold is supplied.
const DefaultAutoSwitch = 21

// DefaultMaxOutputLen bounds scientific-notation output; String uses it
// directly, Format accepts an explicit override (wired to
// Config.MaxOutputLen by the expr package).
const DefaultMaxOutputLen = 1 << 12

// String formats d using ModeAuto at d's own precision, the DefaultAutoSwitch
// threshold and DefaultMaxOutputLen.
func (d Decimal) String() string {
	s, err := Format(d, ModeAuto, d.Acc(), DefaultAutoSwitch, DefaultMaxOutputLen)
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return s
}

// Format renders d in the given mode, first re-rounding to outAcc
// significant digits (spec.md §4.1: "Both modes respect a final re-rounding
// to the requested output acc").
func Format(d Decimal, mode FormatMode, outAcc uint, autoSwitch, maxOutputLen int) (string, error) {
	r := WithAcc(d, outAcc)
	if r.IsZero() {
		return "0", nil
	}

	digits, neg := digitString(r)
	nDigits := len(digits)
	power := int(r.power)

	if mode == ModeAuto {
		metric := nDigits + power
		if metric < 0 {
			metric = -metric
		}
		if metric > autoSwitch {
			mode = ModeScientific
		} else {
			mode = ModeNormal
		}
	}

	var out string
	switch mode {
	case ModeScientific:
		out = formatScientific(digits, neg, power)
	default:
		out = formatNormal(digits, neg, power, nDigits)
	}

	if len(out) > maxOutputLen {
		return "", numerr.Decimalf("formatted output exceeds maximum output length", numerr.ErrInputTooLong)
	}
	return out, nil
}

func digitString(d Decimal) (digits string, neg bool) {
	m := d.bigMantissa()
	neg = m.Sign() < 0
	s := m.Text(10)
	if neg {
		s = s[1:]
	}
	return s, neg
}

func formatNormal(digits string, neg bool, power, nDigits int) string {
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	pointPos := nDigits + power
	switch {
	case pointPos <= 0:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -pointPos))
		sb.WriteString(digits)
	case pointPos >= nDigits:
		sb.WriteString(digits)
		sb.WriteString(strings.Repeat("0", pointPos-nDigits))
	default:
		sb.WriteString(digits[:pointPos])
		sb.WriteByte('.')
		sb.WriteString(digits[pointPos:])
	}
	return sb.String()
}

func formatScientific(digits string, neg bool, power int) string {
	exp := power + len(digits) - 1
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	if len(digits) == 1 {
		sb.WriteString(digits)
	} else {
		sb.WriteString(digits[:1])
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	sb.WriteByte('E')
	if exp >= 0 {
		sb.WriteByte('+')
	}
	sb.WriteString(strconv.Itoa(exp))
	return sb.String()
}
