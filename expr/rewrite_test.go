package expr

import "testing"

// renderLexemes renders a rewritten token stream as a flat slice of lexemes,
// which is easier to assert against than the spaced canonical string.
func renderLexemes(toks []rewriteToken) []string {
	out := make([]string, len(toks))
	for i, rt := range toks {
		out[i] = rt.tok.Lexeme
	}
	return out
}

func rewrite(t *testing.T, input string) []string {
	t.Helper()
	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	p1, err := rewritePass1(toks)
	if err != nil {
		t.Fatalf("rewritePass1(%q): %v", input, err)
	}
	p2 := rewritePass2(p1)
	return renderLexemes(p2)
}

func sameLexemes(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v (%d toks); want %v (%d toks)", got, len(got), want, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("#%d got %q; want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

// 2^3^4 must bind as 2^(3^4), not (2^3)^4: '^' is right-associative.
func TestRewritePowerRightAssoc(t *testing.T) {
	got := rewrite(t, "2^3^4")
	want := []string{"2", "^", "(", "3", "^", "4", ")"}
	sameLexemes(t, got, want)
}

// -x+1 must scope the unary minus to just x, not the whole sum.
func TestRewriteUnaryMinusScope(t *testing.T) {
	got := rewrite(t, "-x+1")
	want := []string{lexemeUnaryMinus, "(", "x", ")", "+", "1"}
	sameLexemes(t, got, want)
}

// sin(x)+1 must not receive a redundant synthetic wrap around the user's
// own argument parens.
func TestRewritePrefixFuncOwnParens(t *testing.T) {
	got := rewrite(t, "sin(x)+1")
	want := []string{"sin", "(", "x", ")", "+", "1"}
	sameLexemes(t, got, want)
}

// Double unary minus nests rather than cancels structurally; cancellation,
// if any, happens at evaluation, not rewriting.
func TestRewriteDoubleUnaryMinus(t *testing.T) {
	got := rewrite(t, "--x")
	want := []string{
		lexemeUnaryMinus, "(",
		lexemeUnaryMinus, "(", "x", ")",
		")",
	}
	sameLexemes(t, got, want)
}

// 1/2pi means 1/(2*pi): implicit multiplication binds tighter than the
// explicit '/' still open around it.
func TestRewriteImplicitMulBindsTighterThanDiv(t *testing.T) {
	got := rewrite(t, "1/2pi")
	want := []string{"1", "/", "(", "2", "&", "pi", ")"}
	sameLexemes(t, got, want)
}

// 1/2+pi has no implicit multiplication at all, so the '/' marker closes
// against '+' without ever producing a wrap.
func TestRewriteImplicitMulDoesNotLeakAcrossAdd(t *testing.T) {
	got := rewrite(t, "1/2+pi")
	want := []string{"1", "/", "2", "+", "pi"}
	sameLexemes(t, got, want)
}

// Absolute-value bars fold to the private abs marker with the same
// argument-paren-consuming behavior as named prefix functions.
func TestRewriteAbsBarFolding(t *testing.T) {
	got := rewrite(t, "|x|+1")
	want := []string{lexemeAbs, "(", "x", ")", "+", "1"}
	sameLexemes(t, got, want)
}
