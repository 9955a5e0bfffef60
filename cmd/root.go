package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/doganiot/mywordismyword/config"
)

var RootCmd = &cobra.Command{
	Use:   "mywordismyword",
	Short: "Contract lifecycle platform for everyday agreements",

	// All child commands need configuration and a database.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		config.ConnectDB()
	},
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
