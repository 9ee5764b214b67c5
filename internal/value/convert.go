package value

import (
	"math"
	"strconv"
	"strings"
)

func isNaN(f float64) bool { return math.IsNaN(f) }

// formatInt renders an Integer the way script source would accept it back:
// plain decimal, no thousands separators.
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatFloat renders a Float using the shortest round-tripping decimal
// form, with NaN and the two infinities spelled the way the lexer accepts
// them back in (spec §6.2 literals: "nan", "infinity").
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "infinity"
	case math.IsInf(f, -1):
		return "-infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// parseIntPrefix parses the leading integer run of s, returning 0 if none
// is present. Used by AsLong's String coercion.
func parseIntPrefix(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseFloatPrefix parses s as a float, returning NaN on failure, per
// §4.1's rule that non-numeric String arithmetic produces NaN.
func parseFloatPrefix(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ConvertTo coerces v to the requested kind, following the same widening
// rules as AsLong/AsDouble/AsString/AsBoolean. ConvertTo only supports the
// scalar kinds (Null, Boolean, Integer, Float, String); converting to List,
// Map, Error or ObjectRef is not supported, and such a target kind returns
// v unchanged.
func (v Value) ConvertTo(k Kind) Value {
	switch k {
	case Null:
		return NewNull()
	case Boolean:
		return NewBoolean(v.AsBoolean())
	case Integer:
		return NewInteger(v.AsLong())
	case Float:
		return NewFloat(v.AsDouble())
	case String:
		return NewString(v.AsString())
	default:
		return v
	}
}
