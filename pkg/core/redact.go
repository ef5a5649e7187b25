package core

import (
	"regexp"
)

// sensitiveKey matches object keys whose values never reach the logs.
var sensitiveKey = regexp.MustCompile(`(?i)(token|secret|password|passwd|authorization|api[_-]?key|credential)`)

const redacted = "***"

// Redact returns a copy of v with the values of sensitive keys masked, at
// any depth. v itself is not modified.
func Redact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			if sensitiveKey.MatchString(k) {
				out[k] = redacted
				continue
			}
			out[k] = Redact(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = Redact(inner)
		}
		return out
	default:
		return v
	}
}
