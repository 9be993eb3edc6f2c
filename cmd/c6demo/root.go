package main

import (
	"github.com/spf13/cobra"

	"github.com/nakisara01/C6demo/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "c6demo",
	Short: "Monophonic transcription and chord suggestion",
	Long: `c6demo transcribes a mono recording at a known tempo into note events,
estimates the key, and suggests a chord per measure.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		} else {
			logging.SetLevel(logging.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
