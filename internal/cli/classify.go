package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thinkfirst-app/thinkfirst/internal/daemon"
)

func init() {
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify PROMPT...",
	Short: "Classify a prompt without recording a submission",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")

	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	a := d.Engine.Classify(cmd.Context(), prompt)

	fmt.Printf("Source:   %s\n", a.Source)
	fmt.Printf("Lazy:     %t\n", a.IsLazy)
	fmt.Printf("Learning: %t\n", a.IsLearning)
	if a.Reason != "" {
		fmt.Printf("Reason:   %s\n", a.Reason)
	}
	if a.SuggestedPrompt != "" {
		fmt.Printf("\nTry instead:\n  %s\n", a.SuggestedPrompt)
	}
	return nil
}
