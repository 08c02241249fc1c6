package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundFloat rounds val half away from zero to the given number of decimal
// places. NaN and infinities are returned unchanged.
func RoundFloat(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}

// Round2 rounds to two decimal places, the precision of every figure the
// analytics layer hands to callers.
func Round2(val float64) float64 {
	return RoundFloat(val, 2)
}

// Clamp bounds val to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Min(math.Max(val, lo), hi)
}
