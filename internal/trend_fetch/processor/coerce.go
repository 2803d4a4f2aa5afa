package processor

import (
	"fmt"
	"strconv"
)

// Stringify renders an arbitrary decoded-JSON value as a string. nil maps to
// "" and integral floats drop the decimal point, so numeric ids survive the
// round trip through encoding/json intact.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Boolish coerces an arbitrary value to a boolean the way loosely typed
// upstream payloads expect: explicit booleans pass through, numbers are
// truthy when non-zero, strings honor ParseBool and fall back to
// non-emptiness, containers are truthy when non-empty.
func Boolish(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}
