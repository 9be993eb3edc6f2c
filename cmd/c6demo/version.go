package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the c6demo version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("c6demo " + version)
	},
}
