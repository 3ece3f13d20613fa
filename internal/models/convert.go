package models

import (
	"strconv"
	"strings"
)

// Amounts arrive from partially-filled forms as numbers, numeric strings or
// nothing at all. Coercion to zero instead of a type error is deliberate
// lenient-input policy carried over from the legacy system.

// AsFloat coerces a record value to float64. Non-numeric input yields 0.
func AsFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// AsString coerces a record value to a string; non-strings yield "".
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsBool coerces a record value to a bool; anything else yields false.
func AsBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// AsStringList coerces a record value to a []string. JSON decoding yields
// []any, a fresh record may carry []string; both are handled.
func AsStringList(v any) []string {
	switch x := v.(type) {
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// toAnyList widens a []string for storage so both backends persist the same
// JSON-compatible shape.
func toAnyList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
