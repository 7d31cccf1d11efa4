package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|[0-9]+\.?[0-9]*(?:[eE][+-]?[0-9]+)?|\.[0-9]+(?:[eE][+-]?[0-9]+)?)`)

// ParseNumber reads the leading numeric prefix of s, so "3px" is 3 and
// "-Infinity" is negative infinity. It reports false when s has no prefix.
func ParseNumber(s string) (float64, bool) {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
