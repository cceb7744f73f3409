package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appver "typedterm/internal/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print typedterm version",
	Run: func(cmd *cobra.Command, args []string) {
		// keep output simple for scripting
		fmt.Fprintln(cmd.OutOrStdout(), appver.AppVersion)
	},
}
