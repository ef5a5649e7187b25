package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/opsmcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of opsmcp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("opsmcp version %s\n", opsmcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
