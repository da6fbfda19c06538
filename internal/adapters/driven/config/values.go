// Package config holds the value conversions shared by the configuration
// adapters.
//
// Stored values arrive with whatever type their source produced: TOML
// decodes integers as int64, callers set plain ints, and hand-edited
// files sometimes quote numbers. The helpers below normalise those into
// the types the settings service asks for.
package config

import (
	"strconv"
	"strings"
)

// Int converts v to an int. Floats are accepted only when whole.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// Float converts v to a float64, widening integers.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Bool converts v to a bool.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	default:
		return false, false
	}
}

// String returns v when it is a string. Other types are not formatted.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
