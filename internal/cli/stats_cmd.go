package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *App) *cobra.Command {
	var groupBy, date string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show productivity statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseDateOrToday(date)
			if err != nil {
				return err
			}

			payload, err := a.Analytics.Aggregate(context.Background(), app.AnalyticsRequest{
				GroupBy: domain.GroupBy(groupBy),
				Ref:     ref,
			})
			if err != nil {
				return err
			}
			report := payload.Report

			var b strings.Builder
			b.WriteString(fmt.Sprintf("%s\n\n", formatter.Dim(report.RangeLabel)))
			b.WriteString(fmt.Sprintf("  %s  %d\n", formatter.Dim("TOTAL       "), report.Stats.Total))
			b.WriteString(fmt.Sprintf("  %s  %d\n", formatter.Dim("COMPLETED   "), report.Stats.Completed))
			b.WriteString(fmt.Sprintf("  %s  %d\n", formatter.Dim("OVERDUE     "), report.Stats.Overdue))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("PRODUCTIVITY"), formatter.Percent(report.Stats.Productivity)))
			if report.MostProductive != "" {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("BEST PERIOD "), report.MostProductive))
			}
			fmt.Print(formatter.RenderBox(fmt.Sprintf("Stats · %s", groupBy), b.String()))

			if len(report.Categories) > 0 {
				fmt.Println(formatter.Header("Categories"))
				headers := []string{"CATEGORY", "TOTAL", "COMPLETED", "SHARE"}
				rows := make([][]string, 0, len(report.Categories))
				for _, c := range report.Categories {
					name := c.Name
					if name == "" {
						name = formatter.Dim("(none)")
					}
					rows = append(rows, []string{
						name,
						fmt.Sprintf("%d", c.Total),
						fmt.Sprintf("%d", c.Completed),
						formatter.Percent(c.Percentage),
					})
				}
				fmt.Print(formatter.RenderTable(headers, rows))
			}

			fmt.Println(formatter.Header("Trend"))
			for _, p := range report.Trend {
				pct := 0.0
				if p.Stats.Total > 0 {
					pct = float64(p.Stats.Completed) / float64(p.Stats.Total)
				}
				fmt.Printf("%s  %s %s\n",
					formatter.Dim(p.Label),
					formatter.RenderProgress(pct, 20),
					formatter.Dim(fmt.Sprintf("%d/%d", p.Stats.Completed, p.Stats.Total)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&groupBy, "group-by", string(domain.GroupByWeek), "Aggregation window (week|month|year)")
	cmd.Flags().StringVar(&date, "date", "", "Any date inside the window (YYYY-MM-DD, default today)")

	return cmd
}

func newReviewCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show the weekly review",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateOrToday(date)
			if err != nil {
				return err
			}

			review, err := a.Analytics.WeeklyReview(context.Background(), app.WeeklyReviewRequest{Date: day})
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(fmt.Sprintf("%s\n\n", formatter.Dim(review.RangeLabel)))
			b.WriteString(fmt.Sprintf("  %s  %d created, %d completed, %d overdue\n",
				formatter.Dim("TASKS    "), review.Created, review.Completed, review.Overdue))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("COMPLETED"), formatter.Percent(review.CompletionRate)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("FOCUS    "), formatter.FormatSeconds(review.TimerMinutes*60)))
			if review.TopCategory != "" {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("TOP      "), review.TopCategory))
			}
			if review.MostProductiveDay != "" {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("BEST DAY "), review.MostProductiveDay))
			}

			if len(review.Insights) > 0 {
				b.WriteString("\n")
				for _, in := range review.Insights {
					b.WriteString(fmt.Sprintf("  %s %s\n", insightMark(string(in.Kind)), in.Text))
				}
			}
			b.WriteString(fmt.Sprintf("\n  %s %s\n", formatter.StyleBlue.Render("→"), review.NextWeekFocus))

			fmt.Print(formatter.RenderBox("Weekly Review", b.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week to review (YYYY-MM-DD, default today)")

	return cmd
}

func insightMark(kind string) string {
	switch kind {
	case "strength":
		return formatter.StyleGreen.Render("▲")
	case "warning":
		return formatter.StyleRed.Render("▼")
	default:
		return formatter.StyleYellow.Render("•")
	}
}
