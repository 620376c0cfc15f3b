package util

import (
	"math"
	"strconv"
	"strings"
)

// RoundHalfUp rounds to the nearest integer with .5 going up, so
// -2.5 becomes -2. this is what the browser did with Math.round and
// the stored weights depend on it
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ParseNumericInput reads a free-text amount such as "R 1 000". every
// character that is not a digit or a dot is dropped. an empty input
// or one that still fails to parse returns fallback; the result is
// never negative
func ParseNumericInput(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !IsFinite(parsed) {
		return fallback
	}
	return math.Max(0, parsed)
}
