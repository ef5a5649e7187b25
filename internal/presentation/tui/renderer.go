package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/opsmcp/pkg/contract"
	"github.com/aretw0/opsmcp/pkg/envelope"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a function that renders markdown using glamour.
// It picks a light or dark style from the terminal background.
func NewRenderer(width int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("init markdown renderer: %w", err)
	}
	return r.Render, nil
}

// Plain returns markdown unchanged, for pipes and files.
func Plain(markdown string) (string, error) { return markdown, nil }

// EnvelopeMarkdown formats a tool result. JSON payloads go in a fenced
// block; plain string results are shown as is.
func EnvelopeMarkdown(tool string, env envelope.Envelope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", tool)
	if _, isString := env.Structured.(string); isString {
		b.WriteString(env.Text)
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("```json\n")
	b.WriteString(env.Text)
	b.WriteString("\n```\n")
	return b.String()
}

// ToolsMarkdown lists contracts as a markdown table.
func ToolsMarkdown(tools []contract.ToolContract) string {
	var b strings.Builder
	b.WriteString("| Tool | Method | Path | Mode |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, c := range tools {
		mode := "read"
		if c.Mutating {
			mode = "write"
		}
		fmt.Fprintf(&b, "| %s | %s | `%s` | %s |\n", c.Name, c.Method, c.Path, mode)
	}
	return b.String()
}
