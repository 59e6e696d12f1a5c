// Package expr implements the infix expression tokenizer, rewriter, and
// Shunting-yard evaluator of spec.md §4.5-4.6: a closed token table, a
// three-pass rewrite from surface syntax into an unambiguous operator
// stream, and a Dijkstra-style evaluator fused with dispatch into
// package dmath.
package expr

import (
	"github.com/db47h/numexpr/decimal"
)

// Value is the closed tagged union spec.md §9 calls for in place of
// duck-typed dispatch: every value flowing through the evaluator is either
// a real Decimal or a ComplexDecimal, and arithmetic/function dispatch
// switches on which one it holds rather than inspecting shape.
type Value struct {
	isComplex bool
	re        decimal.Decimal
	z         decimal.ComplexDecimal
}

// Real lifts a Decimal to a Value.
func Real(d decimal.Decimal) Value { return Value{re: d} }

// Complex lifts a ComplexDecimal to a Value, collapsing to the real case
// when the imaginary part is exactly zero so that downstream formatting and
// comparisons see the simplest representation.
func Complex(z decimal.ComplexDecimal) Value {
	if z.IsReal() {
		return Value{re: z.Re}
	}
	return Value{isComplex: true, z: z}
}

// IsComplex reports whether v carries a nonzero imaginary part.
func (v Value) IsComplex() bool { return v.isComplex }

// AsComplex returns v widened to a ComplexDecimal (imaginary part zero if v
// is real).
func (v Value) AsComplex() decimal.ComplexDecimal {
	if v.isComplex {
		return v.z
	}
	return decimal.FromReal(v.re)
}

// AsReal returns v's real part and reports whether v is actually real.
func (v Value) AsReal() (decimal.Decimal, bool) {
	if v.isComplex {
		return decimal.Decimal{}, false
	}
	return v.re, true
}

// Acc returns v's shared significant-digit budget.
func (v Value) Acc() uint {
	if v.isComplex {
		return v.z.Acc()
	}
	return v.re.Acc()
}

// String renders v in algebraic form.
func (v Value) String() string {
	if v.isComplex {
		return v.z.String()
	}
	return v.re.String()
}
