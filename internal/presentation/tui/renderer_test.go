package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/opsmcp/pkg/contract"
	"github.com/aretw0/opsmcp/pkg/envelope"
)

func TestEnvelopeMarkdown(t *testing.T) {
	md := EnvelopeMarkdown("get-team", envelope.Wrap(map[string]any{"id": "payments"}))
	assert.True(t, strings.HasPrefix(md, "## get-team\n"))
	assert.Contains(t, md, "```json\n{\n  \"id\": \"payments\"\n}\n```")

	md = EnvelopeMarkdown("health", envelope.Wrap("ok"))
	assert.Equal(t, "## health\n\nok\n", md)
}

func TestToolsMarkdown(t *testing.T) {
	md := ToolsMarkdown([]contract.ToolContract{contract.GetTeam, contract.CreateTicket})
	lines := strings.Split(strings.TrimSpace(md), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| get-team | GET | `/teams/{id}` | read |", lines[2])
	assert.Equal(t, "| create-ticket | POST | `/tickets` | write |", lines[3])
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(80)
	require.NoError(t, err)
	out, err := render("# Title\n\nbody text")
	require.NoError(t, err)
	assert.Contains(t, out, "body text")

	plain, err := Plain("# x")
	require.NoError(t, err)
	assert.Equal(t, "# x", plain)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3", [][2]string{{"core", "http://localhost:8080"}, {"tools", "17"}})
	out := buf.String()
	assert.Contains(t, out, "opsmcp")
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "http://localhost:8080")

	buf.Reset()
	Status(&buf, false, "http listener failed")
	assert.Contains(t, buf.String(), "http listener failed")
}
