package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newStreakCmd(a *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show streaks and day qualification",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			today := domain.DateOf(time.Now().UTC())
			start := today.AddDate(0, 0, -(days - 1))

			summary, err := a.Streaks.Summary(ctx, app.StreakSummaryRequest{Start: start, End: today})
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Streak"))
			fmt.Printf("Current %s  Best %s  Rule: %d+ tasks at %d%%\n\n",
				formatter.Bold(fmt.Sprintf("%d", summary.CurrentStreak)),
				formatter.Bold(fmt.Sprintf("%d", summary.BestStreak)),
				summary.Rule.MinDailyTasks, summary.Rule.ThresholdPercent)

			headers := []string{"DATE", "DONE", "RATIO", "QUALIFIED"}
			rows := make([][]string, 0, len(summary.Days))
			for _, d := range summary.Days {
				mark := formatter.StyleRed.Render("✗")
				if d.Qualified {
					mark = formatter.StyleGreen.Render("✓")
				}
				rows = append(rows, []string{
					d.Date.Format(time.DateOnly),
					fmt.Sprintf("%d/%d", d.Completed, d.Scheduled),
					fmt.Sprintf("%.0f%%", d.Ratio),
					mark,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "How many trailing days to show")

	return cmd
}
