package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDecimal converts a decimal string coming from the store into a float64.
// Arithmetic must never run on raw strings, and an unparseable value is an
// error rather than a silent zero.
func ParseDecimal(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty decimal string")
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite decimal %q", s)
	}
	return v, nil
}

// FormatDecimal renders a float back into the store's decimal-string form
// with two fractional digits.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(RoundTo(v, 2), 'f', 2, 64)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// Clamp bounds v into [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
