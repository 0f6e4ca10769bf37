package statvalue

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Fixed formats v with exactly places decimals, rounding half away from zero.
// Non-finite values format as zero.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Round returns v rounded the same way Fixed formats it.
func Round(v float64, places int32) float64 {
	return Value(Fixed(v, places))
}

// Value reads back a string produced by Fixed. Anything unparseable is 0.
func Value(s string) float64 {
	out, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(out) || math.IsInf(out, 0) {
		return 0
	}
	return out
}

// Ratio divides n by d, treating a zero denominator as 1.
func Ratio(n, d float64) float64 {
	if d == 0 {
		d = 1
	}
	return n / d
}

// Percent returns part as a percentage of whole, treating a zero whole as 1.
func Percent(part, whole float64) float64 {
	return Ratio(part, whole) * 100
}
