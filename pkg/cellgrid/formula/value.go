package formula

import (
	"math"
	"strconv"
	"strings"
)

// parseValue converts evaluated text to a number. Empty text is zero.
// The second result is false when the text is not a finite number, so
// words such as "NaN" or "Inf" stay text.
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return math.NaN(), false
	}
	return f, true
}

// toNumber coerces evaluated text for the aggregates: non-numeric text
// becomes NaN.
func toNumber(s string) float64 {
	v, _ := parseValue(s)
	return v
}

// formatNumber renders v in the shortest form that parses back to v.
func formatNumber(v float64) string {
	if v == 0 {
		// drop the sign of negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
