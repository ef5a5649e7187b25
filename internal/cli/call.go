package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/opsmcp/internal/presentation/tui"
)

// Call dispatches one tool call and writes the result to w. argsJSON may be
// empty. When render is set the result is shown as rendered markdown,
// otherwise the raw envelope text is printed.
func Call(ctx context.Context, app *App, tool, argsJSON string, w io.Writer, render tui.Renderer) error {
	args := map[string]any{}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return fmt.Errorf("error parsing --args JSON: %w", err)
		}
	}

	env, err := app.Dispatcher().Dispatch(ctx, tool, args)
	if err != nil {
		return err
	}

	if render == nil {
		_, err = fmt.Fprintln(w, env.Text)
		return err
	}
	out, err := render(tui.EnvelopeMarkdown(tool, env))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
