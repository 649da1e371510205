package main

import (
	"fmt"

	"github.com/aretw0/bombrisk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bombrisk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bombrisk version %s\n", bombrisk.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
