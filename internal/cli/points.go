package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thinkfirst-app/thinkfirst/internal/daemon"
)

func init() {
	rootCmd.AddCommand(pointsCmd)
}

var pointsCmd = &cobra.Command{
	Use:   "points DELTA",
	Short: "Award or deduct thinking points",
	Long: `Apply a thinking-points delta. The balance never goes below zero;
a deduction larger than the balance is clamped.`,
	Args: cobra.ExactArgs(1),
	RunE: runPoints,
}

func runPoints(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid delta %q: %w", args[0], err)
	}

	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	st := d.Engine.AdjustPoints(delta)
	fmt.Printf("Thinking points: %d (level %d)\n", st.ThinkingPoints, st.Gamification.Level)
	return nil
}
