// Package cli implements the ThinkFirst command-line interface using
// Cobra. Each subcommand maps to one engine operation (status, mode,
// goal, points, reset, classify, log) plus serve for the daemon.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "thinkfirst",
	Short: "ThinkFirst — Think before you prompt",
	Long: `ThinkFirst tracks your AI assistant usage and nudges you to think
before you prompt. It counts submissions per day, week, and month,
awards thinking points for learning-focused questions, and keeps
streaks toward a daily goal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
