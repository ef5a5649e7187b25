// Package envelope builds the dual text/structured result returned to agents.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Envelope pairs a readable rendering of a result with the result itself.
// Consumers needing machine access read Structured, never Text.
type Envelope struct {
	Text       string `json:"text"`
	Structured any    `json:"structured,omitempty"`
}

// Wrap builds the envelope for value. Strings are passed through verbatim;
// anything else is rendered as indented JSON. Structured is always value.
func Wrap(value any) Envelope {
	return Envelope{Text: render(value), Structured: value}
}

// WrapJSON builds the envelope for a value decoded from raw. The text is
// rendered from raw so object keys keep the order they were sent in; a
// string value is still passed through verbatim.
func WrapJSON(raw json.RawMessage, value any) Envelope {
	if _, ok := value.(string); ok || len(raw) == 0 {
		return Wrap(value)
	}
	return Envelope{Text: render(raw), Structured: value}
}

func render(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.RawMessage:
		var buf bytes.Buffer
		if err := json.Indent(&buf, v, "", "  "); err == nil {
			return buf.String()
		}
		return string(v)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		// Values here come from decoded JSON; this only guards programmer error.
		return fmt.Sprintf("%v", value)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
