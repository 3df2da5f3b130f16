package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the current version of rayday
var Version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rayday",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rayday version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
