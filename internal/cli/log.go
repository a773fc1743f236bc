package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thinkfirst-app/thinkfirst/internal/daemon"
)

func init() {
	logCmd.Flags().IntVarP(&logTail, "tail", "n", 20, "Number of recent entries to show")
	rootCmd.AddCommand(logCmd)
}

var logTail int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent recorded prompts",
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	entries := d.Engine.GetState().PromptLog
	if len(entries) == 0 {
		fmt.Println("No prompts recorded yet.")
		return nil
	}
	if logTail > 0 && len(entries) > logTail {
		entries = entries[len(entries)-logTail:]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSITE\tMODE\tPROMPT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Site,
			e.Mode,
			truncate(e.Prompt, 60),
		)
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
