package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weftui/weft"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of weft",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("weft version %s\n", weft.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
