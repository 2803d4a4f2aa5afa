package processor

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CleanViewsCount converts the view-count shapes seen upstream ("1.2K",
// "3M", "900 views", raw numbers) into an integer. It is a best-effort
// total function: anything unparseable yields 0, never an error.
func CleanViewsCount(value any) int64 {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return int64(f)
	case string:
		return cleanViewsString(v)
	default:
		return 0
	}
}

func cleanViewsString(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ToUpper(s), "VIEWS", ""))

	switch {
	case strings.Contains(s, "K"):
		return scaled(strings.ReplaceAll(s, "K", ""), 1_000)
	case strings.Contains(s, "M"):
		return scaled(strings.ReplaceAll(s, "M", ""), 1_000_000)
	case strings.Contains(s, "B"):
		return scaled(strings.ReplaceAll(s, "B", ""), 1_000_000_000)
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func scaled(s string, mult float64) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int64(f * mult)
}
