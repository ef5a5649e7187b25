package gateway

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxStringSize caps any single string argument.
const DefaultMaxStringSize = 8192

var (
	ErrStringTooLarge = errors.New("string exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("string contains invalid UTF-8 sequences")
)

// SanitizeString enforces the size limit, validates UTF-8 and strips
// control characters other than newline, tab and carriage return.
func SanitizeString(s string, limit int) (string, error) {
	if limit > 0 && len(s) > limit {
		// Rejected rather than truncated so Core never sees a silently altered query.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrStringTooLarge, len(s), limit)
	}
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range s {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// sanitizeArgs applies SanitizeString to every string in args, including
// those nested in objects and lists. args is modified in place; it is the
// validated copy owned by the dispatcher.
func sanitizeArgs(args map[string]any, limit int) error {
	for k, v := range args {
		clean, err := sanitizeValue(v, limit)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		args[k] = clean
	}
	return nil
}

func sanitizeValue(v any, limit int) (any, error) {
	switch t := v.(type) {
	case string:
		return SanitizeString(t, limit)
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, inner := range t {
			clean, err := sanitizeValue(inner, limit)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			cp[k] = clean
		}
		return cp, nil
	case []any:
		cp := make([]any, len(t))
		for i, inner := range t {
			clean, err := sanitizeValue(inner, limit)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			cp[i] = clean
		}
		return cp, nil
	default:
		return v, nil
	}
}
