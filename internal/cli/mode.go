package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thinkfirst-app/thinkfirst/internal/daemon"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

func init() {
	rootCmd.AddCommand(modeCmd)
}

var modeCmd = &cobra.Command{
	Use:   "mode [strict|normal|relaxed]",
	Short: "Show or set the intervention mode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMode,
}

func runMode(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	if len(args) == 0 {
		fmt.Println(d.Engine.GetState().Mode)
		return nil
	}

	mode, err := domain.ParseMode(args[0])
	if err != nil {
		return err
	}
	if _, err := d.Engine.SetMode(mode); err != nil {
		return err
	}
	fmt.Printf("Mode set to %s\n", mode)
	return nil
}
