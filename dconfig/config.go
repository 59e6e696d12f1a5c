// Package dconfig assembles the engine's global, process-wide tunables into
// a single immutable Config value (spec.md §3's GlobalConfig, §9's redesign
// away from a package-level mutable singleton), following the teacher's
// context.New(prec, mode) construction pattern
// (db47h-decimal/context/context.go) generalized to a functional-options
// constructor.
package dconfig

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/dmath"
)

// Config holds every tunable the expression evaluator and the decimal/dmath
// packages need at runtime, populated once at startup and then passed by
// value (spec.md §9: "no global mutable config with lazy reads").
type Config struct {
	// DefaultAcc is the significant-digit budget used for a literal or
	// result when no narrower accuracy has been requested.
	DefaultAcc uint
	// OutputAcc is the number of significant digits used when formatting a
	// result for display; it may differ from DefaultAcc (spec.md §4.1).
	OutputAcc uint
	// PrintMode selects normal, scientific, or auto-switching formatting.
	PrintMode decimal.FormatMode
	// AutoSwitchThreshold is the |digits+power| cutoff ModeAuto uses to pick
	// scientific notation.
	AutoSwitchThreshold int
	// MaxInputLen bounds the length of a single numeric literal.
	MaxInputLen int
	// MaxOutputLen bounds the length of a single formatted result.
	MaxOutputLen int
	// MaxInputExponent and MinInputExponent bound a parsed literal's decimal
	// exponent, tighter than decimal.MinPower/MaxPower (spec.md §6).
	MaxInputExponent int32
	MinInputExponent int32
	// MaxResultsToShow caps how many solutions a multi-valued operation
	// (e.g. nroot) reports before truncating (spec.md §4.4).
	MaxResultsToShow int
	// MaxCallDepth bounds mutual-recursion depth between two user-defined
	// function bindings (spec.md §5).
	MaxCallDepth int
	// IterationGuard and FastPowDigitThreshold and MaxFactorialN mirror
	// dmath.Env's fields; Config is the single place that sets them.
	IterationGuard        uint
	FastPowDigitThreshold uint
	MaxFactorialN         uint64

	// Constants is a read-only snapshot of the baked-in transcendental
	// constants at DefaultAcc, exposed for introspection (e.g. a REPL "show
	// constants" command); dmath itself never reads this, it recomputes
	// from its own cache on every call.
	Constants ConstantSnapshot

	// Logger receives structured diagnostics, including the warnings dmath
	// emits through its Observer channel (spec.md §7).
	Logger *logiface.Logger[*stumpy.Event]
}

// ConstantSnapshot captures the baked-in constants at a fixed accuracy, for
// display purposes only.
type ConstantSnapshot struct {
	Pi, E, Ln10, Ln1_2, InvTwoPi decimal.Decimal
}

// Option configures a Config under construction.
type Option func(*Config)

// WithAcc sets both DefaultAcc and OutputAcc to acc.
func WithAcc(acc uint) Option {
	return func(c *Config) {
		c.DefaultAcc = acc
		c.OutputAcc = acc
	}
}

// WithOutputAcc overrides OutputAcc independently of DefaultAcc.
func WithOutputAcc(acc uint) Option {
	return func(c *Config) { c.OutputAcc = acc }
}

// WithPrintMode sets the display mode.
func WithPrintMode(mode decimal.FormatMode) Option {
	return func(c *Config) { c.PrintMode = mode }
}

// WithInputLimits sets the accepted literal exponent range and max literal
// length.
func WithInputLimits(minExp, maxExp int32, maxLen int) Option {
	return func(c *Config) {
		c.MinInputExponent = minExp
		c.MaxInputExponent = maxExp
		c.MaxInputLen = maxLen
	}
}

// WithMaxFactorialN overrides the factorial/gamma safety cap.
func WithMaxFactorialN(n uint64) Option {
	return func(c *Config) { c.MaxFactorialN = n }
}

// WithMaxCallDepth overrides the mutual-recursion depth cap.
func WithMaxCallDepth(n int) Option {
	return func(c *Config) { c.MaxCallDepth = n }
}

// WithLogger overrides the default stderr JSON logger.
func WithLogger(l *logiface.Logger[*stumpy.Event]) Option {
	return func(c *Config) { c.Logger = l }
}

// New builds a Config from the engine's defaults, overridden by opts in
// order.
func New(opts ...Option) *Config {
	c := &Config{
		DefaultAcc:            decimal.DefaultAcc,
		OutputAcc:             decimal.DefaultAcc,
		PrintMode:             decimal.ModeAuto,
		AutoSwitchThreshold:   decimal.DefaultAutoSwitch,
		MaxInputLen:           decimal.DefaultMaxInputLen,
		MaxOutputLen:          decimal.DefaultMaxOutputLen,
		MinInputExponent:      decimal.MinPower,
		MaxInputExponent:      decimal.MaxPower,
		MaxResultsToShow:      10,
		MaxCallDepth:          64,
		IterationGuard:        5,
		FastPowDigitThreshold: 4096,
		MaxFactorialN:         10_000_000,
	}
	for _, o := range opts {
		o(c)
	}
	if c.Logger == nil {
		c.Logger = stumpy.L.New(stumpy.L.WithStumpy())
	}
	c.Constants = ConstantSnapshot{
		Pi:       dmath.Pi(c.DefaultAcc),
		E:        dmath.E(c.DefaultAcc),
		Ln10:     dmath.Ln10(c.DefaultAcc),
		Ln1_2:    dmath.Ln1_2(c.DefaultAcc),
		InvTwoPi: dmath.InvTwoPi(c.DefaultAcc),
	}
	return c
}

// Env returns a dmath.Env wired to c's safety limits and an Observer that
// forwards warnings to c.Logger at Warning level.
func (c *Config) Env(acc uint) dmath.Env {
	return dmath.Env{
		Acc:                   acc,
		IterationGuard:        c.IterationGuard,
		FastPowDigitThreshold: c.FastPowDigitThreshold,
		MaxFactorialN:         c.MaxFactorialN,
		Warn: func(op, msg string) {
			c.Logger.Warning().Str("op", op).Log(msg)
		},
	}
}
