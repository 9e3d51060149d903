package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rosterd version",
	Run: func(cmd *cobra.Command, args []string) {
		version := "devel"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		fmt.Fprintln(cmd.OutOrStdout(), "rosterd", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
