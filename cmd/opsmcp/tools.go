package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/opsmcp/internal/cli"
	"github.com/aretw0/opsmcp/internal/presentation/tui"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools or print the Core OpenAPI document",
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

		if openapi, _ := cmd.Flags().GetBool("openapi"); openapi {
			doc, err := app.OpenAPIYAML()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(doc)
			return err
		}

		md := tui.ToolsMarkdown(app.Registry.All())
		out, err := renderer()(md)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.Flags().Bool("openapi", false, "Print the OpenAPI description of the Core endpoints used")
}
