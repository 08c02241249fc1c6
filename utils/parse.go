package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// amountRegexp captures the first numeric value, allowing thousands separators.
var amountRegexp = regexp.MustCompile(`-?[\d,]*\.?\d+`)

// ParseAmount extracts a number from a loosely formatted cell such as
// "₹ 1,25,000", "45.5 L" or "  3200 ". It reports false when no number is present.
func ParseAmount(raw string) (float64, bool) {
	match := amountRegexp.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}
