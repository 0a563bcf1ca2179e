package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Describe the SDK surface",
	Long:  `Print the SDK version, filter operators, supported field types, and operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		printCapabilities(os.Stdout, cuekit.GetCapabilities(), jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)
}
