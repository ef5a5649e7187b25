package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/opsmcp/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "opsmcp",
	Short: "opsmcp exposes the Core operations API as MCP tools",
	Long: `opsmcp is a Model Context Protocol gateway in front of the Core operations API.
Agents call typed tools (incidents, alerts, logs, metrics, tickets, deployments,
services, teams); each call is validated, forwarded to Core and returned as text
plus structured content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "YAML configuration file")
	fs.String("log-level", "", "Log level: debug, info, warn, error")
	fs.String("log-format", "", "Log format: text or json")
	fs.String("core-url", "", "Core base URL (overrides CORE_API_URL)")
	fs.Bool("enable-mutations", false, "Register tools that change Core state")
}

// loadConfig applies flags on top of file and environment settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("core-url") {
		cfg.Core.URL, _ = flags.GetString("core-url")
	}
	if flags.Changed("enable-mutations") {
		cfg.Tools.EnableMutations, _ = flags.GetBool("enable-mutations")
	}
	if flags.Lookup("http-port") != nil && flags.Changed("http-port") {
		cfg.HTTP.Port, _ = flags.GetInt("http-port")
	}
	return cfg, nil
}
