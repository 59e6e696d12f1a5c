package expr

import (
	"strings"

	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/dmath"
	"github.com/db47h/numexpr/numerr"
)

// evalCtx carries everything a single expression evaluation needs: the
// working accuracy/iteration environment, the current x binding (set when
// re-entering for a user-defined function call), the two function bodies,
// and the mutual-recursion depth guard (spec.md §5, §9's Bindings redesign).
type evalCtx struct {
	acc         uint
	env         dmath.Env
	x           Value
	hasX        bool
	bindings    Bindings
	depth       int
	maxDepth    int
	syntaxCheck bool
}

// resolveNumber materializes a ClassNumber token: a literal, one of the
// four reserved constants/variables, or an error for an unbound x.
func resolveNumber(t Token, ctx *evalCtx) (Value, error) {
	if ctx.syntaxCheck {
		return Real(decimal.FromInt64(0, ctx.acc)), nil
	}
	switch t.Lexeme {
	case "pi":
		return Real(dmath.Pi(ctx.acc)), nil
	case "e":
		return Real(dmath.E(ctx.acc)), nil
	case "i":
		return Complex(decimal.FromComponents(decimal.FromInt64(0, ctx.acc), decimal.FromInt64(1, ctx.acc))), nil
	case "x":
		if !ctx.hasX {
			return Value{}, &numerr.SyntaxError{Pos: t.Pos, Msg: "x has no binding in this context"}
		}
		return ctx.x, nil
	default:
		d, err := decimal.Parse(t.Lexeme, ctx.acc)
		if err != nil {
			return Value{}, &numerr.SyntaxError{Pos: t.Pos, Msg: "invalid numeric literal"}
		}
		return Real(d), nil
	}
}

// evaluate runs Dijkstra's Shunting-yard algorithm fused with evaluation
// (spec.md §4.6 pass 3) over a pass-2-rewritten token stream, where every
// prefix-function/'^' reach is already unambiguous and every argument list
// is already explicitly parenthesized.
func evaluate(toks []rewriteToken, ctx *evalCtx) (Value, error) {
	var valStack []Value
	var opStack []rewriteToken
	var argCounts []int // parallels every '(' pushed onto opStack

	zero := func() Value { return Real(decimal.FromInt64(0, ctx.acc)) }

	popAndApply := func() error {
		top := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]
		n := top.tok.Arity
		if n == 0 {
			n = 1
		}
		if len(valStack) < n {
			return &numerr.SyntaxError{Pos: top.tok.Pos, Msg: "missing operand for " + top.tok.Lexeme}
		}
		args := append([]Value(nil), valStack[len(valStack)-n:]...)
		valStack = valStack[:len(valStack)-n]
		var res Value
		var err error
		if top.tok.Position == PositionInfix {
			res, err = applyBinary(top.tok.Lexeme, args[0], args[1], ctx)
		} else {
			res, err = applyFunction(top.tok.Lexeme, args, ctx)
		}
		if err != nil {
			if ctx.syntaxCheck {
				// structural validity only; a domain error on the
				// zero-substituted operands does not invalidate the syntax.
				valStack = append(valStack, zero())
				return nil
			}
			return err
		}
		valStack = append(valStack, res)
		return nil
	}

	for _, rt := range toks {
		t := rt.tok
		switch {
		case t.Class == ClassNumber:
			v, err := resolveNumber(t, ctx)
			if err != nil {
				return Value{}, err
			}
			valStack = append(valStack, v)

		case t.Lexeme == "(":
			opStack = append(opStack, rt)
			argCounts = append(argCounts, 0)

		case t.Class == ClassSep:
			for len(opStack) > 0 && opStack[len(opStack)-1].tok.Lexeme != "(" {
				if err := popAndApply(); err != nil {
					return Value{}, err
				}
			}
			if len(argCounts) == 0 {
				return Value{}, &numerr.SyntaxError{Pos: t.Pos, Msg: "',' outside a function call"}
			}
			argCounts[len(argCounts)-1]++

		case t.Lexeme == ")":
			for len(opStack) > 0 && opStack[len(opStack)-1].tok.Lexeme != "(" {
				if err := popAndApply(); err != nil {
					return Value{}, err
				}
			}
			if len(opStack) == 0 {
				return Value{}, &numerr.SyntaxError{Pos: t.Pos, Msg: "unmatched ')'"}
			}
			opStack = opStack[:len(opStack)-1]
			argc := argCounts[len(argCounts)-1]
			argCounts = argCounts[:len(argCounts)-1]
			if len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.tok.Class == ClassFunc && top.tok.Position == PositionPrefix {
					want := top.tok.Arity
					if want == 0 {
						want = 1
					}
					if argc+1 != want {
						return Value{}, &numerr.SyntaxError{Pos: top.tok.Pos, Msg: "wrong argument count for " + top.tok.Lexeme}
					}
					if err := popAndApply(); err != nil {
						return Value{}, err
					}
					continue
				}
			}
			if argc != 0 {
				return Value{}, &numerr.SyntaxError{Pos: t.Pos, Msg: "unexpected ','"}
			}

		case t.Position == PositionPostfix:
			opStack = append(opStack, rt)
			if err := popAndApply(); err != nil {
				return Value{}, err
			}

		case t.Position == PositionPrefix:
			opStack = append(opStack, rt)

		case t.Position == PositionInfix:
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.tok.Lexeme == "(" {
					break
				}
				// Right-associative operators (and prefix markers, which
				// never reach here in well-formed pass-2 output) pop only
				// strictly tighter-binding operators; left-associative
				// operators also pop equal-priority ones.
				if t.Assoc == AssocRight {
					if top.tok.Priority >= t.Priority {
						break
					}
				} else if top.tok.Priority > t.Priority {
					break
				}
				if err := popAndApply(); err != nil {
					return Value{}, err
				}
			}
			opStack = append(opStack, rt)

		default:
			return Value{}, &numerr.SyntaxError{Pos: t.Pos, Msg: "unexpected token"}
		}
	}

	for len(opStack) > 0 {
		if opStack[len(opStack)-1].tok.Lexeme == "(" {
			return Value{}, &numerr.SyntaxError{Msg: "unmatched '('"}
		}
		if err := popAndApply(); err != nil {
			return Value{}, err
		}
	}
	if len(valStack) != 1 {
		return Value{}, &numerr.SyntaxError{Msg: "malformed expression"}
	}
	return valStack[0], nil
}

// displayLexeme renders a rewriter-internal sentinel back to user-facing
// notation for the canonical pretty string.
func displayLexeme(t Token) string {
	switch t.Lexeme {
	case lexemeUnaryMinus:
		return "-"
	case lexemeAbs:
		return "abs"
	default:
		return t.Lexeme
	}
}

// renderCanonical reconstructs the canonical, fully-disambiguated pretty
// string for a pass-2-rewritten token stream (spec.md §4.6's syntaxCheck
// mode output), independent of evaluation.
func renderCanonical(toks []rewriteToken) string {
	var b strings.Builder
	needSpaceBefore := func(prev, cur Token) bool {
		if prev.Lexeme == "" {
			return false
		}
		if cur.Lexeme == ")" || cur.Lexeme == "," || cur.Class == ClassSep {
			return false
		}
		if prev.Lexeme == "(" {
			return false
		}
		return true
	}
	var prev Token
	for _, rt := range toks {
		cur := rt.tok
		if needSpaceBefore(prev, cur) {
			b.WriteByte(' ')
		}
		b.WriteString(displayLexeme(cur))
		prev = cur
	}
	return b.String()
}
