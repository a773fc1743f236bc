package cli

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/thinkfirst-app/thinkfirst/internal/app/usage"
	"github.com/thinkfirst-app/thinkfirst/internal/daemon"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

const chartDays = 14

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show usage counters, points, and streak",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(rootCmd.Version)
	if err != nil {
		return err
	}
	defer d.Close()

	st := d.Engine.GetState()
	g := st.Gamification

	fmt.Printf("Mode:    %s\n", st.Mode)
	fmt.Printf("Usage:   today %d · week %d · month %d\n", st.Usage.Today, st.Usage.Week, st.Usage.Month)
	fmt.Printf("Points:  %d (level %d)\n", st.ThinkingPoints, g.Level)
	fmt.Printf("Streak:  %d day(s), longest %d, daily goal %d\n", g.CurrentStreak, g.LongestStreak, g.DailyGoal)

	if chart := dailyChart(st, chartDays); chart != "" {
		fmt.Printf("\nPrompts, last %d days:\n%s\n", chartDays, chart)
	}
	return nil
}

// dailyChart renders the recent daily counts, zero-filled so quiet
// days show as flats instead of gaps.
func dailyChart(st domain.State, days int) string {
	counts := make(map[string]int, len(st.Usage.History.Daily))
	any := false
	for _, e := range st.Usage.History.Daily {
		counts[e.Key] = e.Count
		if e.Count > 0 {
			any = true
		}
	}
	if !any {
		return ""
	}

	now := st.Usage.LastReset.Daily
	data := make([]float64, days)
	for i := 0; i < days; i++ {
		key := usage.DayKeyFor(now.AddDate(0, 0, i-days+1))
		data[i] = float64(counts[key])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Caption("prompts per day"),
	)
}
