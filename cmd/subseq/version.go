package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/subseq-go/pkg/subseq"
)

// versionCmd prints version and feature information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), subseq.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
