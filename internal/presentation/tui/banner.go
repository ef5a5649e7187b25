package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner and the effective settings to w.
// The gateway speaks JSON-RPC on stdout, so w is normally stderr.
func PrintBanner(w io.Writer, version string, settings [][2]string) {
	out := termenv.NewOutput(w)
	title := out.String("opsmcp").Bold().Foreground(out.Color("#818cf8"))
	ver := out.String("v" + version).Faint()

	fmt.Fprintf(w, "%s %s\n", title, ver)
	for _, kv := range settings {
		key := out.String(fmt.Sprintf("  %-10s", kv[0])).Foreground(out.Color("#a78bfa"))
		fmt.Fprintf(w, "%s %s\n", key, kv[1])
	}
}

// Status writes one colored status line: green when ok, red otherwise.
func Status(w io.Writer, ok bool, msg string) {
	out := termenv.NewOutput(w)
	mark, color := "✓", "#22c55e"
	if !ok {
		mark, color = "✗", "#ef4444"
	}
	fmt.Fprintf(w, "%s %s\n", out.String(mark).Foreground(out.Color(color)), msg)
}
