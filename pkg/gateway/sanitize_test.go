package gateway

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain", "error rate > 5%", "error rate > 5%", nil},
		{"keeps whitespace controls", "a\tb\r\nc", "a\tb\r\nc", nil},
		{"strips escape", "red\x1b[31malert", "red[31malert", nil},
		{"strips null and bell", "a\x00b\x07c", "abc", nil},
		{"invalid utf8", "bad\xff", "", ErrInvalidUTF8},
		{"too large", strings.Repeat("x", 33), "", ErrStringTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeString(tt.input, 32)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeString_NoLimit(t *testing.T) {
	got, err := SanitizeString(strings.Repeat("y", 100000), 0)
	require.NoError(t, err)
	assert.Len(t, got, 100000)
}

func TestSanitizeArgs_Nested(t *testing.T) {
	args := map[string]any{
		"query": "a\x1bb",
		"scope": map[string]any{"service": "pay\x00ments"},
		"level": []any{"err\x07or", "warn"},
		"limit": 5,
	}
	require.NoError(t, sanitizeArgs(args, 100))
	assert.Equal(t, "ab", args["query"])
	assert.Equal(t, map[string]any{"service": "payments"}, args["scope"])
	assert.Equal(t, []any{"error", "warn"}, args["level"])
	assert.Equal(t, 5, args["limit"])
}

func TestSanitizeArgs_ReportsPath(t *testing.T) {
	args := map[string]any{"scope": map[string]any{"team": strings.Repeat("t", 20)}}
	err := sanitizeArgs(args, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStringTooLarge))
	assert.True(t, strings.HasPrefix(err.Error(), "scope: team: "))
}
