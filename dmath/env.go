// Package dmath implements the transcendental core (exp, ln, lg, log, sqrt,
// cbrt, pow, nroot, the trigonometric and hyperbolic families and their
// inverses, factorial/gamma, and the polar-form conversion) over
// decimal.Decimal and decimal.ComplexDecimal.
//
// Every routine returns a value rounded to acc significant digits (taken
// from the Env argument) and reports numerr.ErrUnreliable if its bounded
// series or range reduction fails to converge within acc+Env.IterationGuard
// iterations, following the teacher's guard-digit convention
// (db47h/decimal/math: "p := prec + decimal.DigitsPerWord").
package dmath

import "github.com/db47h/numexpr/decimal"

// Observer receives non-aborting warnings emitted during a computation, such
// as a trig range-reduction precision bump or a Newton-iteration fallback to
// the exp∘ln path. It is the hook through which package dconfig wires a
// structured logger (spec.md §7: "Warnings ... are surfaced through an
// observer channel").
type Observer func(op, msg string)

func (o Observer) warn(op, msg string) {
	if o != nil {
		o(op, msg)
	}
}

// Env carries the per-call tunables that spec.md's GlobalConfig (C7) would
// otherwise supply from a hidden global: the significant-digit budget, the
// convergence iteration guard, and the safety limits referenced by pow and
// fact/gamma. Acc is propagated through every dmath call explicitly rather
// than read from a package-level variable (spec.md §9, "Global mutable
// config with lazy reads").
type Env struct {
	// Acc is the target number of significant digits in the result.
	Acc uint
	// IterationGuard is added to Acc to form the hard cap on series/Newton
	// iterations (spec.md §4.4: "globalCalcAccuracy + 5").
	IterationGuard uint
	// FastPowDigitThreshold is the estimated result digit count above which
	// Pow's integer fast-exponentiation path runs at an elevated internal
	// accuracy to avoid intermediate blow-up (spec.md §4.4 branch 3).
	FastPowDigitThreshold uint
	// MaxFactorialN caps Fact/Gamma's divide-and-conquer product (spec.md
	// §4.4, §9: "a configurable hard cap (n ≤ 10^7)").
	MaxFactorialN uint64
	// Warn receives non-aborting diagnostics; may be nil.
	Warn Observer
}

// DefaultEnv returns an Env with the module's default safety limits at the
// given accuracy.
func DefaultEnv(acc uint) Env {
	return Env{
		Acc:                   acc,
		IterationGuard:        5,
		FastPowDigitThreshold: 4096,
		MaxFactorialN:         10_000_000,
	}
}

// guardPrec returns the precision a guard-digit-widened intermediate value
// should use: Acc plus a handful of extra digits, mirroring
// db47h/decimal/math's "p := prec + decimal.DigitsPerWord".
func (e Env) guardPrec() uint { return e.Acc + 9 }

// iterCap returns the hard iteration cap for bounded series/Newton loops.
func (e Env) iterCap() uint {
	return e.Acc + e.IterationGuard
}

func zero(acc uint) decimal.Decimal { return decimal.FromInt64(0, acc) }
func one(acc uint) decimal.Decimal  { return decimal.FromInt64(1, acc) }
func two(acc uint) decimal.Decimal  { return decimal.FromInt64(2, acc) }
