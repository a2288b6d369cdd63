package common

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FirstString returns the value of the first key in keys that holds a
// non-empty string in m.
func FirstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// FirstNumber returns the value of the first key in keys that holds a
// numeric value in m.
func FirstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if n, ok := ToNumber(m[k]); ok {
			return n, true
		}
	}
	return 0, false
}

// ToNumber coerces a loosely typed value into a float64. JSON decoding
// produces float64 for numbers, but upstream producers also hand us ints,
// json.Number, and numeric strings.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
