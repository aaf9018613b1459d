package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/exinc"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of exinc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "exinc version %s\n", strings.TrimSpace(exinc.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
