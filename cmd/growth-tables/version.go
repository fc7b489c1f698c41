package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of growth-tables",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("growth-tables %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
