package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flakeconf/flakeconf/src/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			fmt.Println(version.Long())
		} else {
			fmt.Println(version.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
