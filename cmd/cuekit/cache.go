package main

import (
	"os"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local task cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove every cached task record",
	Run: func(cmd *cobra.Command, args []string) {
		cache, _, err := openCache()
		if err != nil {
			handleError(err)
		}
		defer cache.Close()

		if err := cache.Purge(); err != nil {
			handleError(err)
		}
		printSuccess(os.Stdout, "Cache purged", jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
}
