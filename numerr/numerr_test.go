package numerr

import (
	"errors"
	"testing"
)

func TestWrapUnwrap(t *testing.T) {
	err := Mathf("sqrt", ErrUndefined)
	if !errors.Is(err, ErrUndefined) {
		t.Errorf("errors.Is(%v, ErrUndefined) = false; want true", err)
	}
	want := "math: sqrt: decimal: undefined result"
	if err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}
}

func TestWrapNoMessage(t *testing.T) {
	err := wrap("expr", "", ErrInputFormat)
	want := "expr: decimal: invalid input format"
	if err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}
}

func TestSyntaxErrorPositions(t *testing.T) {
	tests := []struct {
		pos  int
		want string
	}{
		{0, "expr: syntax error at position 0: bad"},
		{1, "expr: syntax error at position 1: bad"},
		{42, "expr: syntax error at position 42: bad"},
		{-3, "expr: syntax error at position -3: bad"},
	}
	for i, tt := range tests {
		e := &SyntaxError{Pos: tt.pos, Msg: "bad"}
		if got := e.Error(); got != tt.want {
			t.Errorf("#%d Error() = %q; want %q", i, got, tt.want)
		}
	}
}
