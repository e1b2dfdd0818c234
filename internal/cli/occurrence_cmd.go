package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(a *App) *cobra.Command {
	var from, to, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List occurrences in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now().UTC().Format(time.DateOnly)
			if from == "" {
				from = today
			}
			if to == "" {
				to = from
			}
			start, err := domain.ParseDate(from)
			if err != nil {
				return err
			}
			end, err := domain.ParseDate(to)
			if err != nil {
				return err
			}

			views, err := a.Occurrences.ListRange(context.Background(), app.ListOccurrencesRequest{
				Start:  start,
				End:    end,
				Status: status,
			})
			if err != nil {
				return err
			}
			printOccurrences(views, start, end)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD, default --from)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending|completed|overdue)")

	return cmd
}

func newTodayCmd(a *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's occurrences and streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			today := domain.DateOf(time.Now().UTC())

			views, err := a.Occurrences.ListDay(ctx, today, status, nil)
			if err != nil {
				return err
			}
			printOccurrences(views, today, today)

			streak, err := a.Streaks.Today(ctx, nil)
			if err != nil {
				return err
			}
			mark := formatter.StyleRed.Render("✗")
			if streak.Qualified {
				mark = formatter.StyleGreen.Render("✓")
			}
			fmt.Printf("\n%s %d/%d completed (%.0f%%) %s  streak %s\n",
				formatter.Dim("Today:"),
				streak.Completed, streak.Scheduled, streak.Ratio, mark,
				formatter.Bold(fmt.Sprintf("%d", streak.CurrentStreak)))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending|completed|overdue)")

	return cmd
}

func newCompleteCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "complete TASK",
		Short: "Mark an occurrence completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, a, args[0])
			if err != nil {
				return err
			}
			day, err := parseDateOrToday(date)
			if err != nil {
				return err
			}

			view, err := a.Occurrences.Complete(ctx, t.ID, day, nil)
			if err != nil {
				if errors.Is(err, domain.ErrTimerNotElapsed) {
					return fmt.Errorf("%w (run: cadence timer start %s)", err, args[0])
				}
				if errors.Is(err, domain.ErrOccurrenceLocked) {
					return fmt.Errorf("%w (overdue occurrences cannot be completed)", err)
				}
				return err
			}
			fmt.Printf("%s %s on %s\n", formatter.StatusIndicator(view.Status), view.Title, day.Format(time.DateOnly))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Occurrence date (YYYY-MM-DD, default today)")

	return cmd
}

func printOccurrences(views []app.OccurrenceView, start, end time.Time) {
	label := start.Format(time.DateOnly)
	if !start.Equal(end) {
		label += " - " + end.Format(time.DateOnly)
	}
	if len(views) == 0 {
		fmt.Printf("No occurrences for %s\n", label)
		return
	}

	fmt.Println(formatter.Header(label))
	headers := []string{"STATUS", "TITLE", "ID", "DATE", "PRIORITY", "CATEGORY", "EXTRAS"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			formatter.StatusIndicator(v.Status),
			v.Title,
			formatter.TruncID(v.TaskID),
			v.Date.Format(time.DateOnly),
			formatter.PriorityLabel(v.Priority),
			v.Category,
			occurrenceExtras(v),
		})
	}
	fmt.Print(formatter.RenderTable(headers, rows))
}

// occurrenceExtras renders the deadline and timer columns compactly.
func occurrenceExtras(v app.OccurrenceView) string {
	var extras []string
	if v.HasDeadline {
		extras = append(extras, formatter.Dim("due "+v.DeadlineTime))
	}
	if v.HasTimer {
		left := formatter.FormatSeconds(v.TimerRemain)
		if v.TimerRunning {
			extras = append(extras, formatter.StyleYellow.Render("⏱ "+left))
		} else {
			extras = append(extras, formatter.Dim("⏱ "+left))
		}
	}
	if v.IsRecurring {
		extras = append(extras, formatter.Dim("↻"))
	}
	if len(extras) == 0 {
		return ""
	}
	out := extras[0]
	for _, e := range extras[1:] {
		out += "  " + e
	}
	return out
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return domain.DateOf(time.Now().UTC()), nil
	}
	return domain.ParseDate(s)
}
