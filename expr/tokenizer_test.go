package expr

import "testing"

func TestTokenizeBasic(t *testing.T) {
	toks, err := Tokenize("3.5+2*x")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []string{"3.5", "+", "2", "*", "x"}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Lexeme != w {
			t.Errorf("#%d got lexeme %q; want %q", i, toks[i].Lexeme, w)
		}
	}
}

func TestTokenizeNormalization(t *testing.T) {
	toks, err := Tokenize("2 ** 3 [cdot] 4")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []string{"2", "^", "3", "*", "4"}
	for i, w := range want {
		if toks[i].Lexeme != w {
			t.Errorf("#%d got lexeme %q; want %q", i, toks[i].Lexeme, w)
		}
	}
}

func TestTokenizeRejectsPrivateLexeme(t *testing.T) {
	if _, err := Tokenize("sin(x)"); err != nil {
		t.Fatalf("Tokenize(sin(x)): unexpected error: %v", err)
	}
	if _, err := Tokenize("unknownfunc(1)"); err == nil {
		t.Errorf("Tokenize(unknownfunc(1)): expected error for unknown identifier")
	}
}

func TestTokenizeUnknownChar(t *testing.T) {
	if _, err := Tokenize("3 % 2"); err == nil {
		t.Errorf("expected error for unsupported '%%' character")
	}
}
