package decimal

import "testing"

func TestParseFormatRoundtrip(t *testing.T) {
	tests := []string{
		"0", "1", "-1", "3.14159", "-0.001", "100000", "0.1", "123456789.987654321",
	}
	for i, s := range tests {
		d, err := Parse(s, 40)
		if err != nil {
			t.Fatalf("#%d Parse(%q): %v", i, s, err)
		}
		got, err := Format(d, ModeNormal, 40, DefaultAutoSwitch, DefaultMaxOutputLen)
		if err != nil {
			t.Fatalf("#%d Format: %v", i, err)
		}
		back, err := Parse(got, 40)
		if err != nil {
			t.Fatalf("#%d re-Parse(%q): %v", i, got, err)
		}
		if Cmp(d, back) != 0 {
			t.Errorf("#%d roundtrip mismatch: %s -> %s -> %s", i, s, got, back)
		}
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1", "2", -1},
		{"2", "1", 1},
		{"1", "1", 0},
		{"1.0", "1.00", 0},
		{"-1", "1", -1},
		{"0", "-0", 0},
	}
	for i, tt := range tests {
		a, err := Parse(tt.a, DefaultAcc)
		if err != nil {
			t.Fatalf("#%d Parse(%q): %v", i, tt.a, err)
		}
		b, err := Parse(tt.b, DefaultAcc)
		if err != nil {
			t.Fatalf("#%d Parse(%q): %v", i, tt.b, err)
		}
		if got := Cmp(a, b); got != tt.want {
			t.Errorf("#%d Cmp(%s, %s) = %d; want %d", i, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAddSubInverse(t *testing.T) {
	a, _ := Parse("123.456", DefaultAcc)
	b, _ := Parse("78.9", DefaultAcc)
	sum, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	back, err := Sub(sum, b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if Cmp(a, back) != 0 {
		t.Errorf("(a+b)-b = %v; want %v", back, a)
	}
}

func TestMulQuoInverse(t *testing.T) {
	a, _ := Parse("7", DefaultAcc)
	b, _ := Parse("3", DefaultAcc)
	prod, err := Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	back, err := Quo(prod, b)
	if err != nil {
		t.Fatalf("Quo: %v", err)
	}
	if Cmp(a, back) != 0 {
		t.Errorf("(a*b)/b = %v; want %v", back, a)
	}
}

func TestQuoByZero(t *testing.T) {
	a, _ := Parse("1", DefaultAcc)
	zero, _ := Parse("0", DefaultAcc)
	if _, err := Quo(a, zero); err == nil {
		t.Error("Quo(1, 0): expected error")
	}
}

func TestFloorCeilSgn(t *testing.T) {
	tests := []struct {
		in         string
		floor, ceil string
		sgn        int
	}{
		{"3.7", "3", "4", 1},
		{"-3.7", "-4", "-3", -1},
		{"0", "0", "0", 0},
	}
	for i, tt := range tests {
		d, err := Parse(tt.in, DefaultAcc)
		if err != nil {
			t.Fatalf("#%d Parse: %v", i, err)
		}
		wantFloor, _ := Parse(tt.floor, DefaultAcc)
		wantCeil, _ := Parse(tt.ceil, DefaultAcc)
		if got := Floor(d); Cmp(got, wantFloor) != 0 {
			t.Errorf("#%d Floor(%s) = %v; want %v", i, tt.in, got, wantFloor)
		}
		if got := Ceil(d); Cmp(got, wantCeil) != 0 {
			t.Errorf("#%d Ceil(%s) = %v; want %v", i, tt.in, got, wantCeil)
		}
		if got := Sgn(d); got.Sign() != tt.sgn {
			t.Errorf("#%d Sgn(%s) = %v; want sign %d", i, tt.in, got, tt.sgn)
		}
	}
}

func TestAbsNeg(t *testing.T) {
	d, _ := Parse("-5.5", DefaultAcc)
	if got := Abs(d); got.Sign() != 1 {
		t.Errorf("Abs(-5.5) sign = %d; want 1", got.Sign())
	}
	if got := Neg(Neg(d)); Cmp(got, d) != 0 {
		t.Errorf("Neg(Neg(x)) = %v; want %v", got, d)
	}
}
