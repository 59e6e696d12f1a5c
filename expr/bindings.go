package expr

import "github.com/db47h/numexpr/numerr"

// Bindings holds the two user-definable function bodies f(x) and g(x)
// (spec.md §4.6 last paragraph, §9's redesign note). Rather than the source
// evaluator's approach of re-entering itself with the other body passed as
// ad hoc string context, both bodies are threaded explicitly through every
// recursive call so either may reference the other by name.
type Bindings struct {
	F, G string
}

// body returns the stored source for name ("f" or "g"), and whether it is
// actually bound.
func (b Bindings) body(name string) (string, bool) {
	switch name {
	case "f":
		return b.F, b.F != ""
	case "g":
		return b.G, b.G != ""
	}
	return "", false
}

// callBinding re-enters the evaluator on the stored body for name, binding
// its free variable x to arg. An unbound name raises ErrUnknownFunction
// (spec.md §4.6); exceeding the configured mutual-recursion depth raises
// ErrUnreliable, since unchecked recursion is the one way this evaluator
// could otherwise fail to terminate (spec.md §5).
func (ctx *evalCtx) callBinding(name string, arg Value) (Value, error) {
	src, ok := ctx.bindings.body(name)
	if !ok {
		return Value{}, numerr.Exprf(name, numerr.ErrUnknownFunction)
	}
	if ctx.depth+1 > ctx.maxDepth {
		return Value{}, numerr.Exprf("max call depth exceeded", numerr.ErrUnreliable)
	}
	child := *ctx
	child.x = arg
	child.hasX = true
	child.depth = ctx.depth + 1
	return evalSource(src, &child)
}
