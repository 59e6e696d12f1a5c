package dmath

import (
	"errors"
	"testing"

	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

const testAcc = 30

func approxEqual(t *testing.T, got, want decimal.Decimal, tol string) {
	t.Helper()
	d, err := decimal.Sub(got, want)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	tolD, err := decimal.Parse(tol, testAcc)
	if err != nil {
		t.Fatalf("Parse(%q): %v", tol, err)
	}
	if decimal.Cmp(decimal.Abs(d), tolD) > 0 {
		t.Errorf("got %v; want %v within %s", got, want, tol)
	}
}

func TestFactKnownValues(t *testing.T) {
	env := DefaultEnv(testAcc)
	tests := []struct {
		n    uint64
		want int64
	}{
		{0, 1},
		{1, 1},
		{5, 120},
		{10, 3628800},
	}
	for i, tt := range tests {
		got, err := Fact(tt.n, env)
		if err != nil {
			t.Fatalf("#%d Fact(%d): %v", i, tt.n, err)
		}
		want := decimal.FromInt64(tt.want, testAcc)
		if decimal.Cmp(got, want) != 0 {
			t.Errorf("#%d Fact(%d) = %v; want %d", i, tt.n, got, tt.want)
		}
	}
}

func TestPowIntegerExact(t *testing.T) {
	env := DefaultEnv(testAcc)
	base := decimal.FromInt64(2, testAcc)
	exp := decimal.FromInt64(10, testAcc)
	got, err := Pow(base, exp, env)
	if err != nil {
		t.Fatalf("Pow(2, 10): %v", err)
	}
	want := decimal.FromInt64(1024, testAcc)
	if decimal.Cmp(got, want) != 0 {
		t.Errorf("Pow(2, 10) = %v; want 1024", got)
	}
}

func TestSqrtPerfectSquare(t *testing.T) {
	env := DefaultEnv(testAcc)
	got, err := Sqrt(decimal.FromInt64(4, testAcc), env)
	if err != nil {
		t.Fatalf("Sqrt(4): %v", err)
	}
	approxEqual(t, got, decimal.FromInt64(2, testAcc), "1e-25")
}

func TestExpZero(t *testing.T) {
	env := DefaultEnv(testAcc)
	got, err := Exp(decimal.FromInt64(0, testAcc), env)
	if err != nil {
		t.Fatalf("Exp(0): %v", err)
	}
	if decimal.Cmp(got, decimal.FromInt64(1, testAcc)) != 0 {
		t.Errorf("Exp(0) = %v; want 1", got)
	}
}

func TestLnOne(t *testing.T) {
	env := DefaultEnv(testAcc)
	got, err := Ln(decimal.FromInt64(1, testAcc), env)
	if err != nil {
		t.Fatalf("Ln(1): %v", err)
	}
	if decimal.Cmp(got, decimal.FromInt64(0, testAcc)) != 0 {
		t.Errorf("Ln(1) = %v; want 0", got)
	}
}

func TestLnExpInverse(t *testing.T) {
	env := DefaultEnv(testAcc)
	e, err := Exp(decimal.FromInt64(1, testAcc), env)
	if err != nil {
		t.Fatalf("Exp(1): %v", err)
	}
	got, err := Ln(e, env)
	if err != nil {
		t.Fatalf("Ln(e): %v", err)
	}
	approxEqual(t, got, decimal.FromInt64(1, testAcc), "1e-25")
}

func TestSinZero(t *testing.T) {
	env := DefaultEnv(testAcc)
	got, err := Sin(decimal.FromInt64(0, testAcc), env)
	if err != nil {
		t.Fatalf("Sin(0): %v", err)
	}
	approxEqual(t, got, decimal.FromInt64(0, testAcc), "1e-25")
}

func TestSinPiOverSix(t *testing.T) {
	env := DefaultEnv(testAcc)
	six := decimal.FromInt64(6, testAcc)
	piOverSix, err := decimal.Quo(Pi(testAcc), six)
	if err != nil {
		t.Fatalf("Pi/6: %v", err)
	}
	got, err := Sin(piOverSix, env)
	if err != nil {
		t.Fatalf("Sin(pi/6): %v", err)
	}
	half, err := decimal.Parse("0.5", testAcc)
	if err != nil {
		t.Fatalf("Parse(0.5): %v", err)
	}
	approxEqual(t, got, half, "1e-25")
}

func TestPowNegativeBaseOddDenominatorRoot(t *testing.T) {
	env := DefaultEnv(testAcc)
	base := decimal.Neg(decimal.FromInt64(2, testAcc))
	exp, err := decimal.Parse("0.2", testAcc)
	if err != nil {
		t.Fatalf("Parse(0.2): %v", err)
	}
	got, err := Pow(base, exp, env)
	if err != nil {
		t.Fatalf("Pow(-2, 0.2): %v", err)
	}
	absBase := decimal.Abs(base)
	lnAbs, err := Ln(absBase, env)
	if err != nil {
		t.Fatalf("Ln(2): %v", err)
	}
	product, err := decimal.Mul(exp, lnAbs)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	wantMag, err := Exp(product, env)
	if err != nil {
		t.Fatalf("Exp: %v", err)
	}
	want := decimal.Neg(wantMag)
	approxEqual(t, got, want, "1e-20")
	if got.Sign() >= 0 {
		t.Errorf("Pow(-2, 0.2) = %v; want a negative real (odd denominator 5, numerator 1 is odd)", got)
	}
}

func TestPowNegativeBaseEvenDenominatorHasNoRealRoot(t *testing.T) {
	env := DefaultEnv(testAcc)
	base := decimal.Neg(decimal.FromInt64(2, testAcc))
	exp, err := decimal.Parse("0.5", testAcc)
	if err != nil {
		t.Fatalf("Parse(0.5): %v", err)
	}
	_, err = Pow(base, exp, env)
	if err == nil {
		t.Fatalf("Pow(-2, 0.5) succeeded; want ErrUndefined (even denominator 2, no real square root)")
	}
	if !errors.Is(err, numerr.ErrUndefined) {
		t.Errorf("Pow(-2, 0.5) error = %v; want ErrUndefined", err)
	}
}

func TestSinBeyondMaxReducibleAngleIsUnreliable(t *testing.T) {
	env := DefaultEnv(testAcc)
	huge, err := decimal.Parse("1e90", testAcc)
	if err != nil {
		t.Fatalf("Parse(1e90): %v", err)
	}
	_, err = Sin(huge, env)
	if err == nil {
		t.Fatalf("Sin(1e90) succeeded; want ErrUnreliable (exceeds stored 1/(2*pi) precision)")
	}
	if !errors.Is(err, numerr.ErrUnreliable) {
		t.Errorf("Sin(1e90) error = %v; want ErrUnreliable", err)
	}
}

func TestGammaFactorialIdentity(t *testing.T) {
	env := DefaultEnv(testAcc)
	for n := uint64(0); n <= 6; n++ {
		fact, err := Fact(n, env)
		if err != nil {
			t.Fatalf("Fact(%d): %v", n, err)
		}
		gammaArg := decimal.FromInt64(int64(n+1), testAcc)
		g, err := Gamma(gammaArg, env)
		if err != nil {
			t.Fatalf("Gamma(%d): %v", n+1, err)
		}
		approxEqual(t, g, fact, "1e-15")
	}
}
