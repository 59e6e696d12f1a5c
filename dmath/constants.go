package dmath

import (
	"math/big"

	"github.com/db47h/numexpr/decimal"
)

// Baked-in high-precision constants (spec.md §3, §4.4: "Constants are baked
// in at build time to the highest precision the engine promises"). Widening
// these beyond bakedPrec digits is not possible; Pi/E/Ln10/Ln1_2/InvTwoPi
// cap the requested accuracy at bakedPrec and the caller's Observer (if any)
// is not warned here — callers that need more digits than bakedPrec should
// not rely on this engine's constant table (see DESIGN.md Open Question 3).
const (
	piLiteral = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798"
	eLiteral  = "2.71828182845904523536028747135266249775724709369995957496696762772407663035354759457138217852516642743"
	ln10Lit   = "2.30258509299404568401799145468436420760110148862877297603332790096757260967735248023599720508959829834"
	ln1_2Lit  = "0.18232155679395462620884078240726999468619736230017358436631936657861992383963706881903112518351767598"
	invTwoPi  = "0.15915494309189533576888376337251436203445964574045644874766734405889679764633169927699828247847969465"

	bakedPrec uint = 100
)

var (
	_pi       = mustParse(piLiteral, bakedPrec)
	_e        = mustParse(eLiteral, bakedPrec)
	_ln10     = mustParse(ln10Lit, bakedPrec)
	_ln1_2    = mustParse(ln1_2Lit, bakedPrec)
	_invTwoPi = mustParse(invTwoPi, bakedPrec)
)

func mustParse(s string, acc uint) decimal.Decimal {
	d, err := decimal.Parse(s, acc)
	if err != nil {
		panic("dmath: malformed baked-in constant: " + err.Error())
	}
	return d
}

func capAcc(acc, baked uint) uint {
	if acc > baked {
		return baked
	}
	return acc
}

// Pi returns π rounded to acc significant digits (capped at the baked-in
// precision).
func Pi(acc uint) decimal.Decimal { return decimal.WithAcc(_pi, capAcc(acc, bakedPrec)) }

// E returns Euler's number rounded to acc significant digits.
func E(acc uint) decimal.Decimal { return decimal.WithAcc(_e, capAcc(acc, bakedPrec)) }

// Ln10 returns ln(10) rounded to acc significant digits.
func Ln10(acc uint) decimal.Decimal { return decimal.WithAcc(_ln10, capAcc(acc, bakedPrec)) }

// Ln1_2 returns ln(1.2) rounded to acc significant digits.
func Ln1_2(acc uint) decimal.Decimal { return decimal.WithAcc(_ln1_2, capAcc(acc, bakedPrec)) }

// InvTwoPi returns 1/(2π) rounded to acc significant digits.
func InvTwoPi(acc uint) decimal.Decimal {
	return decimal.WithAcc(_invTwoPi, capAcc(acc, bakedPrec))
}

// MaxReducibleAngle is the largest |x| that the sin/cos range reduction
// (_toLessThanHalfPi, spec.md §4.4) can handle, determined by the precision
// of the stored 1/(2π) constant: reducing x = N·2π + r correctly requires
// N·2π to be known to at least acc digits beyond the angle's own magnitude,
// which bounds N (and hence |x|) by 10 raised to roughly bakedPrec-acc.
// Exposed as a tunable per spec.md §9's Open Question (ship a larger
// constant, or surface the limit).
func MaxReducibleAngle(acc uint) decimal.Decimal {
	headroom := int64(bakedPrec) - int64(acc)
	if headroom < 1 {
		headroom = 1
	}
	d, _ := decimal.FromParts(big.NewInt(1), int32(headroom), acc)
	return d
}

// lanczosTier selects a coefficient set by accuracy tier (spec.md §4.4:
// "acc ≤ 40, ≤ 75, ≤ 155, else the largest tier"). All four tiers currently
// share the same canonical g=7, n=9 Lanczos coefficients (see gamma.go);
// shipping distinct higher-precision coefficient sets per tier is future
// work (DESIGN.md documents this as a known limitation rather than faking
// precision the coefficients do not carry).
func lanczosTier(acc uint) int {
	switch {
	case acc <= 40:
		return 0
	case acc <= 75:
		return 1
	case acc <= 155:
		return 2
	default:
		return 3
	}
}
