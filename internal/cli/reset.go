package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thinkfirst-app/thinkfirst/internal/daemon"
)

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Wipe all history, points, and the prompt log")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

var (
	resetAll bool
	resetYes bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset today's counter, or everything with --all",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if resetAll && !resetYes {
		fmt.Print("This wipes all usage history, points, and the prompt log. Continue? [y/N] ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	if resetAll {
		d.Engine.ResetAll()
		fmt.Println("All usage history, points, and the prompt log were reset.")
		return nil
	}

	st := d.Engine.ResetToday()
	fmt.Printf("Today's counter reset. Now: today %d · week %d · month %d.\n", st.Usage.Today, st.Usage.Week, st.Usage.Month)
	return nil
}
