package util

import "github.com/shopspring/decimal"

// Ratio returns part / whole * scale rounded to two decimals, rounding half away from zero.
// whole must be positive.
func Ratio(part, whole int, scale float64) float64 {
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromFloat(scale)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(2).
		InexactFloat64()
}
