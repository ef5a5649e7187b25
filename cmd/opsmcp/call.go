package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/opsmcp/internal/cli"
	"github.com/aretw0/opsmcp/internal/presentation/tui"
)

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Call one tool and print the result",
	Example: `  opsmcp call get-team --args '{"id":"payments"}'
  opsmcp call query-incidents --args '{"scope":{"service":"checkout"},"status":["open"]}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err := cli.NewApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close(context.Background())

		raw, _ := cmd.Flags().GetString("args")
		var render tui.Renderer
		if term.IsTerminal(int(os.Stdout.Fd())) {
			render = renderer()
		}
		return cli.Call(cmd.Context(), app, args[0], raw, os.Stdout, render)
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().String("args", "", "Tool arguments as a JSON object")
}

// renderer returns a glamour renderer sized to the terminal, or plain
// output when stdout is not a terminal.
func renderer() tui.Renderer {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return tui.Plain
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 0
	}
	r, err := tui.NewRenderer(width)
	if err != nil {
		return tui.Plain
	}
	return r
}
