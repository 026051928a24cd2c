package bmi

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Overridden via -ldflags at release build time.
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "bmi %s (commit %s, %s)\n", version, commit, runtime.Version())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
