package expr

import (
	"testing"

	"github.com/db47h/numexpr/dconfig"
	"github.com/db47h/numexpr/decimal"
)

func calc(t *testing.T, cfg *dconfig.Config, input string) Value {
	t.Helper()
	res, err := Eval(input, cfg, Value{}, false, Bindings{}, Calc)
	if err != nil {
		t.Fatalf("Eval(%q): %v", input, err)
	}
	return res.Value
}

func realWithin(t *testing.T, v Value, want string, tol string) {
	t.Helper()
	re, ok := v.AsReal()
	if !ok {
		t.Fatalf("value %v is complex, want real", v)
	}
	wantD, err := decimal.Parse(want, re.Acc())
	if err != nil {
		t.Fatalf("Parse(%q): %v", want, err)
	}
	diff, err := decimal.Sub(re, wantD)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	tolD, err := decimal.Parse(tol, re.Acc())
	if err != nil {
		t.Fatalf("Parse(%q): %v", tol, err)
	}
	if decimal.Cmp(decimal.Abs(diff), tolD) > 0 {
		t.Errorf("got %v; want %s within %s", re, want, tol)
	}
}

func TestEvalBasicArithmetic(t *testing.T) {
	cfg := dconfig.New()
	realWithin(t, calc(t, cfg, "0.1+0.2"), "0.3", "1e-25")
}

func TestEvalLnExpInverse(t *testing.T) {
	cfg := dconfig.New()
	realWithin(t, calc(t, cfg, "ln(e^10)"), "10", "1e-20")
}

func TestEvalSinOfPiOverSix(t *testing.T) {
	cfg := dconfig.New()
	realWithin(t, calc(t, cfg, "sin(pi/6)"), "0.5", "1e-20")
}

func TestEvalArctanFour(t *testing.T) {
	cfg := dconfig.New()
	got := calc(t, cfg, "arctan(1)*4")
	want := calc(t, cfg, "pi")
	re1, _ := got.AsReal()
	re2, _ := want.AsReal()
	diff, err := decimal.Sub(re1, re2)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	tol, _ := decimal.Parse("1e-20", re1.Acc())
	if decimal.Cmp(decimal.Abs(diff), tol) > 0 {
		t.Errorf("arctan(1)*4 = %v; want pi = %v", re1, re2)
	}
}

func TestEvalGammaFactorial(t *testing.T) {
	cfg := dconfig.New()
	realWithin(t, calc(t, cfg, "gamma(5)"), "24", "1e-15")
}

func TestEvalComplexPower(t *testing.T) {
	cfg := dconfig.New()
	got := calc(t, cfg, "(1+i)^8")
	realWithin(t, got, "16", "1e-15")
}

// 1/2pi reads as 1/(2*pi), not (1/2)*pi, per spec.md §4.6's implicit
// multiplication rule.
func TestEvalImplicitMulPrecedence(t *testing.T) {
	cfg := dconfig.New()
	a := calc(t, cfg, "1/2pi")
	b := calc(t, cfg, "1/(2*pi)")
	ra, _ := a.AsReal()
	rb, _ := b.AsReal()
	if decimal.Cmp(ra, rb) != 0 {
		t.Errorf("1/2pi = %v; want 1/(2*pi) = %v", ra, rb)
	}
}

// ^ is right-associative: 2^3^4 == 2^(3^4), not (2^3)^4.
func TestEvalPowerRightAssociative(t *testing.T) {
	cfg := dconfig.New()
	a := calc(t, cfg, "2^3^4")
	b := calc(t, cfg, "2^(3^4)")
	c := calc(t, cfg, "(2^3)^4")
	ra, _ := a.AsReal()
	rb, _ := b.AsReal()
	rc, _ := c.AsReal()
	if decimal.Cmp(ra, rb) != 0 {
		t.Errorf("2^3^4 = %v; want 2^(3^4) = %v", ra, rb)
	}
	if decimal.Cmp(ra, rc) == 0 {
		t.Errorf("2^3^4 should not equal (2^3)^4 = %v", rc)
	}
}

// (-8)^(1/3) has a real cube root (-2): the odd-denominator real branch of
// dmath.Pow should handle this directly.
func TestEvalNegativeBaseOddRootPower(t *testing.T) {
	cfg := dconfig.New()
	got := calc(t, cfg, "(-8)^(1/3)")
	if got.IsComplex() {
		t.Fatalf("(-8)^(1/3) = %v; want a real result", got)
	}
	realWithin(t, got, "-2", "1e-15")
}

// (-2)^0.5 has no real square root; applyBinary must retry through CPow on
// dmath.Pow's ErrUndefined instead of surfacing a raw error.
func TestEvalNegativeBaseEvenRootPowerGoesComplex(t *testing.T) {
	cfg := dconfig.New()
	got := calc(t, cfg, "(-2)^0.5")
	if !got.IsComplex() {
		t.Fatalf("(-2)^0.5 = %v; want a complex result (no real square root)", got)
	}
	z := got.AsComplex()
	want := calc(t, cfg, "sqrt(2)")
	wantRe, _ := want.AsReal()
	diff, err := decimal.Sub(z.Im, wantRe)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	tol, _ := decimal.Parse("1e-15", wantRe.Acc())
	if decimal.Cmp(decimal.Abs(diff), tol) > 0 {
		t.Errorf("(-2)^0.5 imaginary part = %v; want sqrt(2) = %v", z.Im, wantRe)
	}
}

func TestEvalAbsBarComplex(t *testing.T) {
	cfg := dconfig.New()
	realWithin(t, calc(t, cfg, "|-3+4i|"), "5", "1e-20")
}

func TestEvalSyntaxCheckDoesNotCompute(t *testing.T) {
	cfg := dconfig.New()
	res, err := Eval("1/0", cfg, Value{}, false, Bindings{}, SyntaxCheck)
	if err != nil {
		t.Fatalf("syntax check on 1/0: unexpected error: %v", err)
	}
	if res.Pretty == "" {
		t.Errorf("expected non-empty canonical rendering")
	}
}

func TestEvalUserFunctionBinding(t *testing.T) {
	cfg := dconfig.New()
	bindings := Bindings{F: "x^2+1"}
	res, err := Eval("f(3)", cfg, Value{}, false, bindings, Calc)
	if err != nil {
		t.Fatalf("Eval(f(3)): %v", err)
	}
	realWithin(t, res.Value, "10", "1e-20")
}
