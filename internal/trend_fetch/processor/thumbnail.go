package processor

import (
	"encoding/json"
	"strings"
)

// ParseThumbnail coerces a thumbnail field into a map. Upstream delivers it
// as a real object, a string-encoded object, or a bare URL; downstream code
// never has to branch on the raw shape again.
func ParseThumbnail(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case string:
		if m, ok := parseLiteralMap(v); ok {
			return m
		}
		return map[string]any{"static": v, "rich": v}
	default:
		return map[string]any{"static": value, "rich": value}
	}
}

// parseLiteralMap parses a string-encoded object. JSON first; a second pass
// tolerates single-quoted dict reprs that some upstreams stringify into the
// payload. Literal data only, nothing is evaluated.
func parseLiteralMap(s string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(trimmed), &m); err == nil {
		return m, true
	}
	if strings.Contains(trimmed, "'") {
		requoted := strings.ReplaceAll(trimmed, "'", `"`)
		if err := json.Unmarshal([]byte(requoted), &m); err == nil {
			return m, true
		}
	}
	return nil, false
}
