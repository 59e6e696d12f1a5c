package expr

import (
	"github.com/db47h/numexpr/dconfig"
)

// Mode selects between full evaluation and structural-only validation
// (spec.md §4.6 pass 3).
type Mode int

const (
	// Calc materializes numbers and constants and performs full evaluation.
	Calc Mode = iota
	// SyntaxCheck rewrites and validates the expression, returning the
	// canonical pretty string, without computing a value.
	SyntaxCheck
)

// Result is the outcome of a single Eval call.
type Result struct {
	Value   Value
	Pretty  string
	IsCheck bool
}

// Eval tokenizes, rewrites, and evaluates input against cfg, with the given
// variable binding for x (ignored when input never references x) and the
// user-defined function bodies available to f/g (spec.md §4.5-4.6).
func Eval(input string, cfg *dconfig.Config, x Value, hasX bool, bindings Bindings, mode Mode) (Result, error) {
	ctx := &evalCtx{
		acc:         cfg.DefaultAcc,
		env:         cfg.Env(cfg.DefaultAcc),
		x:           x,
		hasX:        hasX,
		bindings:    bindings,
		maxDepth:    cfg.MaxCallDepth,
		syntaxCheck: mode == SyntaxCheck,
	}
	return evalWithCtx(input, ctx)
}

// evalSource re-enters evaluation for a user-defined function body, reusing
// the caller's accuracy/bindings/depth (bindings.go's callBinding).
func evalSource(src string, ctx *evalCtx) (Value, error) {
	res, err := evalWithCtx(src, ctx)
	if err != nil {
		return Value{}, err
	}
	return res.Value, nil
}

func evalWithCtx(input string, ctx *evalCtx) (Result, error) {
	toks, err := Tokenize(input)
	if err != nil {
		return Result{}, err
	}
	p1, err := rewritePass1(toks)
	if err != nil {
		return Result{}, err
	}
	p2 := rewritePass2(p1)
	pretty := renderCanonical(p2)
	if ctx.syntaxCheck {
		if _, err := evaluate(p2, ctx); err != nil {
			return Result{}, err
		}
		return Result{Pretty: pretty, IsCheck: true}, nil
	}
	v, err := evaluate(p2, ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v, Pretty: pretty}, nil
}
