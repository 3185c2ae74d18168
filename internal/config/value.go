package config

import (
	"fmt"
	"math"
	"strings"
)

// asMap returns v as a string-keyed table. YAML decoders may produce
// map[any]any for nested tables, so both shapes are accepted.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asMillis interprets v as a non-negative whole number of milliseconds.
func asMillis(path string, v any) (uint64, error) {
	switch n := v.(type) {
	case int:
		return nonNegative(path, v, int64(n))
	case int8:
		return nonNegative(path, v, int64(n))
	case int16:
		return nonNegative(path, v, int64(n))
	case int32:
		return nonNegative(path, v, int64(n))
	case int64:
		return nonNegative(path, v, n)
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case float32:
		return wholeFloat(path, v, float64(n))
	case float64:
		return wholeFloat(path, v, n)
	default:
		return 0, &TypeError{Path: path, Expected: "unsigned integer", Actual: typeName(v)}
	}
}

func nonNegative(path string, raw any, n int64) (uint64, error) {
	if n < 0 {
		return 0, &ValueError{Path: path, Value: raw, Reason: "must not be negative"}
	}
	return uint64(n), nil
}

// wholeFloat accepts floats that carry an exact integer, which is how JSON
// numbers arrive.
func wholeFloat(path string, raw any, f float64) (uint64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, &ValueError{Path: path, Value: raw, Reason: "must be a whole number"}
	}
	if f < 0 {
		return 0, &ValueError{Path: path, Value: raw, Reason: "must not be negative"}
	}
	if f >= math.MaxInt64 {
		return 0, &ValueError{Path: path, Value: raw, Reason: "out of range"}
	}
	return uint64(f), nil
}

// asStringSlice accepts []string or []any holding only strings.
func asStringSlice(path string, v any) ([]string, error) {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...), nil
	case []any:
		out := make([]string, len(s))
		for i, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, &TypeError{
					Path:     fmt.Sprintf("%s[%d]", path, i),
					Expected: "string",
					Actual:   typeName(item),
				}
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, &TypeError{Path: path, Expected: "array of strings", Actual: typeName(v)}
	}
}

// joinPath appends key to a dot-separated parent path.
func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := any(m)
	for _, part := range parts {
		cm, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int8, int16, int32, int64:
		return "int"
	case uint, uint8, uint16, uint32, uint64:
		return "uint"
	case float32, float64:
		return "float"
	case bool:
		return "bool"
	case []string, []any:
		return "array"
	case map[string]any, map[any]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
