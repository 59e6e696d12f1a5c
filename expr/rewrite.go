package expr

import "github.com/db47h/numexpr/numerr"

// rewriteToken is the structured replacement (spec.md §9) for the source
// rewriter's in-band sentinel characters (#, :, @, [, ], ~): every piece of
// bookkeeping the two surface passes need travels as a typed field instead
// of a character spliced into the token stream.
type rewriteToken struct {
	tok Token
	// depth is the paren-nesting level this token was emitted at, used by
	// pass 2 to match a prefix-function/^ marker against the point where its
	// reach should be closed.
	depth int
}

// rewritePass1 performs spec.md §4.6 pass 1: implicit-multiplication
// insertion, absolute-value bar folding to the private abs function, and
// leading-sign normalization to the private unary-minus token. It returns a
// flat token stream (already including any implicit '&' and the folded
// A(...) calls) with a running paren-depth annotation per token.
func rewritePass1(toks []Token) ([]rewriteToken, error) {
	var out []rewriteToken
	depth := 0
	var absStack []int // depth at which each still-open '|' was opened

	endsOperand := func(t Token) bool {
		return t.Class == ClassNumber ||
			(t.Lexeme == ")" && t.Class == ClassParen) ||
			(t.Class == ClassFunc && t.Position == PositionPostfix)
	}
	startsOperand := func(t Token) bool {
		return t.Class == ClassNumber ||
			(t.Lexeme == "(" && t.Class == ClassParen) ||
			(t.Class == ClassFunc && t.Position == PositionPrefix) ||
			t.Lexeme == "|"
	}

	var prev *Token
	for idx := 0; idx < len(toks); idx++ {
		t := toks[idx]

		if t.Class == ClassFunc && isPrivateLexeme(t.Lexeme) {
			return nil, &numerr.SyntaxError{Pos: t.Pos, Msg: "reserved internal token in input"}
		}

		// Leading/post-operator sign normalization.
		if (t.Lexeme == "+" || t.Lexeme == "-") && t.Position == PositionInfix {
			atStart := prev == nil
			afterOpenerOrOp := prev != nil && (prev.Lexeme == "(" || prev.Lexeme == "," || prev.Lexeme == "|" ||
				(prev.Class == ClassFunc && (prev.Position == PositionInfix || prev.Position == PositionPrefix)))
			if atStart || afterOpenerOrOp {
				if t.Lexeme == "-" {
					e := operatorTable[lexemeUnaryMinus]
					out = append(out, rewriteToken{tok: Token{
						Lexeme: lexemeUnaryMinus, Class: ClassFunc, Private: true,
						Priority: e.priority, Arity: e.arity, Position: e.position, Assoc: e.assoc, Pos: t.Pos,
					}, depth: depth})
					prev = &out[len(out)-1].tok
				}
				// a leading '+' is simply dropped.
				continue
			}
		}

		// Insert implicit multiplication between an operand-ending token and
		// an operand-starting token.
		if prev != nil && endsOperand(*prev) && startsOperand(t) {
			e := operatorTable["&"]
			out = append(out, rewriteToken{tok: Token{
				Lexeme: "&", Class: ClassFunc, Priority: e.priority, Arity: e.arity,
				Position: e.position, Assoc: e.assoc, Pos: t.Pos,
			}, depth: depth})
		}

		switch {
		case t.Lexeme == "(":
			depth++
			out = append(out, rewriteToken{tok: t, depth: depth - 1})
		case t.Lexeme == ")":
			depth--
			if depth < 0 {
				return nil, &numerr.SyntaxError{Pos: t.Pos, Msg: "unmatched closing parenthesis"}
			}
			out = append(out, rewriteToken{tok: t, depth: depth})
		case t.Lexeme == "|":
			if len(absStack) > 0 && absStack[len(absStack)-1] == depth-1 && prev != nil && endsOperand(*prev) {
				// closes the innermost open abs bar
				absStack = absStack[:len(absStack)-1]
				depth--
				out = append(out, rewriteToken{tok: Token{Lexeme: ")", Class: ClassParen, Pos: t.Pos}, depth: depth})
			} else {
				e := prefixEntry()
				out = append(out, rewriteToken{tok: Token{
					Lexeme: lexemeAbs, Class: ClassFunc, Private: true,
					Priority: e.priority, Arity: e.arity, Position: e.position, Assoc: e.assoc, Pos: t.Pos,
				}, depth: depth})
				out = append(out, rewriteToken{tok: Token{Lexeme: "(", Class: ClassParen, Pos: t.Pos}, depth: depth})
				depth++
				absStack = append(absStack, depth-1)
			}
		default:
			out = append(out, rewriteToken{tok: t, depth: depth})
		}
		prev = &out[len(out)-1].tok
	}

	// Close any parens/abs-bars left open at end of input.
	for len(absStack) > 0 {
		absStack = absStack[:len(absStack)-1]
		depth--
		out = append(out, rewriteToken{tok: Token{Lexeme: ")", Class: ClassParen}, depth: depth})
	}
	for depth > 0 {
		depth--
		out = append(out, rewriteToken{tok: Token{Lexeme: ")", Class: ClassParen}, depth: depth})
	}
	return out, nil
}

// rewritePass2 implements spec.md §4.6 pass 2: prefix functions (including
// the folded unary-minus/abs sentinels) and '^' reach as far right as
// precedence allows, and an implicit multiplication binds tighter than the
// explicit '*'/'/' still open around it. Instead of splicing marker
// characters into the stream (the source language's #/:/@ sentinels), the
// reach of every such marker is resolved into a `closeAt` map keyed by its
// index, then a synthetic '(' ... ')' pair is inserted around it in a single
// rebuild pass. A marker already scoped by the user's own parens (e.g.
// "sin(x)") is consumed without adding a redundant wrap. '^' is
// right-associative, so a chain of '^' at the same depth shares one marker
// and receives a single wrap spanning the whole chain. A '*'/'/' marker only
// wraps if a following implicit '&' claims it before anything looser closes
// it, so "1/2pi" reads as "1/(2*pi)" but "1/2+pi" stays "(1/2)+pi".
func rewritePass2(toks []rewriteToken) []rewriteToken {
	var out []rewriteToken

	// First resolve, for every prefix-function/^ marker, the index of the
	// token that forces its closing wrap: the first subsequent operator or
	// closing paren at the same depth whose priority is strictly looser
	// (a greater priority number) than the marker's, or an explicit ')' —
	// then rebuild the stream once with every close inserted at its
	// resolved position.
	// activated tracks '*'/'/' markers (see below) that a later implicit
	// '&' has actually claimed; an un-activated '*'/'/' marker never
	// produces a wrap; it is indistinguishable from having never been
	// pushed at all.
	closeAt := make(map[int]int) // index in toks -> insert-before index in toks
	activated := make(map[int]bool)
	var markerStack []int
	for i, rt := range toks {
		// A marker immediately followed by its own explicit argument
		// parenthesis (e.g. the "(" in "sin(x)") is already unambiguously
		// scoped; consume it silently rather than adding a redundant
		// synthetic wrap around the user's own parens.
		if rt.tok.Lexeme == "(" && len(markerStack) > 0 {
			top := markerStack[len(markerStack)-1]
			if top == i-1 && toks[top].depth == rt.depth {
				markerStack = markerStack[:len(markerStack)-1]
				continue
			}
		}
		if rt.tok.Class == ClassFunc && rt.tok.Position == PositionPrefix {
			markerStack = append(markerStack, i)
			continue
		}
		if rt.tok.Lexeme == "^" {
			// right-associative: a chain of '^' at the same depth shares a
			// single pending marker (the first one), so the eventual wrap
			// spans the whole chain: 2^3^4 -> 2^(3^4), not (2^3)^4.
			chained := len(markerStack) > 0 &&
				toks[markerStack[len(markerStack)-1]].depth == rt.depth &&
				toks[markerStack[len(markerStack)-1]].tok.Lexeme == "^"
			if !chained {
				markerStack = append(markerStack, i)
			}
			continue
		}
		// Only an operator/closing-paren context can force a marker's
		// implicit reach to end; operands (numbers, opening parens,
		// separators) carry no meaningful priority here and must pass
		// through untouched.
		for len(markerStack) > 0 {
			top := markerStack[len(markerStack)-1]
			marker := toks[top]
			if marker.depth != rt.depth {
				break
			}
			if rt.tok.Lexeme == ")" || rt.tok.Priority > marker.tok.Priority {
				isMulMarker := marker.tok.Lexeme == "*" || marker.tok.Lexeme == "/"
				if !isMulMarker || activated[top] {
					if _, ok := closeAt[top]; !ok {
						closeAt[top] = i
					}
				}
				markerStack = markerStack[:len(markerStack)-1]
				continue
			}
			break
		}
		switch rt.tok.Lexeme {
		case "&":
			// An implicit multiplication binds tighter than the explicit
			// '*'/'/' that is still open around it: "1/2pi" means
			// "1/(2*pi)", not "(1/2)*pi". Claim the innermost still-open
			// '*'/'/' marker so it gets wrapped when it eventually closes.
			if len(markerStack) > 0 {
				top := markerStack[len(markerStack)-1]
				if toks[top].depth == rt.depth && (toks[top].tok.Lexeme == "*" || toks[top].tok.Lexeme == "/") {
					activated[top] = true
				}
			}
		case "*", "/":
			markerStack = append(markerStack, i)
		}
	}
	for len(markerStack) > 0 {
		top := markerStack[len(markerStack)-1]
		markerStack = markerStack[:len(markerStack)-1]
		isMulMarker := toks[top].tok.Lexeme == "*" || toks[top].tok.Lexeme == "/"
		if !isMulMarker || activated[top] {
			if _, ok := closeAt[top]; !ok {
				closeAt[top] = len(toks)
			}
		}
	}

	// openAt[j] lists marker indices whose synthetic '(' must be emitted
	// immediately before toks[j] (right after the marker token itself,
	// handled inline below) and closeBefore[j] lists marker indices whose
	// synthetic ')' must be emitted immediately before toks[j].
	closeBefore := make(map[int][]int)
	for marker, pos := range closeAt {
		closeBefore[pos] = append(closeBefore[pos], marker)
	}

	for i, rt := range toks {
		for range closeBefore[i] {
			out = append(out, rewriteToken{tok: Token{Lexeme: ")", Class: ClassParen}, depth: rt.depth})
		}
		out = append(out, rt)
		if _, ok := closeAt[i]; ok {
			out = append(out, rewriteToken{tok: Token{Lexeme: "(", Class: ClassParen}, depth: rt.depth})
		}
	}
	for range closeBefore[len(toks)] {
		out = append(out, rewriteToken{tok: Token{Lexeme: ")", Class: ClassParen}})
	}
	return out
}
