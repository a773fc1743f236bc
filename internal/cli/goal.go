package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thinkfirst-app/thinkfirst/internal/daemon"
)

func init() {
	rootCmd.AddCommand(goalCmd)
}

var goalCmd = &cobra.Command{
	Use:   "goal [POINTS]",
	Short: "Show or set the daily thinking-points goal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGoal,
}

func runGoal(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	if len(args) == 0 {
		fmt.Println(d.Engine.GetState().Gamification.DailyGoal)
		return nil
	}

	goal, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid goal %q: %w", args[0], err)
	}
	if _, err := d.Engine.SetDailyGoal(goal); err != nil {
		return err
	}
	fmt.Printf("Daily goal set to %d points\n", goal)
	return nil
}
