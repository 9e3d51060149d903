// Package cmd provides CLI commands for the rosterd binary.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rosterd",
	Short: "Shift roster service for the two store branches",
	Long: `rosterd manages the employee registry, the daily shift board for both
store branches, attendance punches, and automatic shift assignment.

Run "rosterd serve" to start the HTTP API, or "rosterd assign" to run the
assignment engine directly against the configured database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns an exit code for main.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return 1
	}
	return 0
}
