package dmath

import (
	"math"
	"strconv"

	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/numerr"
)

// decimalToFloat converts d to a float64 for use as a fast, non-authoritative
// initial guess feeding a Newton iteration; the guess's low bits never reach
// the result, only its order of magnitude does, so float64's bounded
// precision is immaterial here (spec.md §4.4 describes Sqrt/Cbrt as
// iterative with "any reasonable seed").
func decimalToFloat(d decimal.Decimal) (float64, error) {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0, numerr.Mathf("could not derive a floating-point seed", numerr.ErrUnreliable)
	}
	return f, nil
}

func sqrtFloat(f float64) float64 { return math.Sqrt(f) }
func cbrtFloat(f float64) float64 { return math.Cbrt(f) }
