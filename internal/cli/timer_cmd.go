package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/cli/timerwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run countdown timers on occurrences",
	}

	cmd.AddCommand(
		newTimerStartCmd(a),
		newTimerStopCmd(a),
		newTimerStatusCmd(a),
		newTimerWatchCmd(a),
	)

	return cmd
}

func newTimerStartCmd(a *App) *cobra.Command {
	var date string
	var watch bool

	cmd := &cobra.Command{
		Use:   "start TASK",
		Short: "Start or resume the countdown",
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

			view, err := a.Occurrences.StartTimer(ctx, t.ID, day, nil)
			if err != nil {
				return err
			}
			fmt.Printf("Timer started for %s, %s remaining\n", view.Title, formatter.FormatSeconds(view.TimerRemain))

			if watch && a.Interactive {
				return runWatch(a, view.TaskID, day)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Occurrence date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Stay attached and show the live countdown")

	return cmd
}

func newTimerStopCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "stop TASK",
		Short: "Pause the countdown, banking elapsed time",
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

			view, err := a.Occurrences.StopTimer(ctx, t.ID, day, nil)
			if err != nil {
				return err
			}
			fmt.Printf("Timer stopped for %s, %s remaining\n", view.Title, formatter.FormatSeconds(view.TimerRemain))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Occurrence date (YYYY-MM-DD, default today)")

	return cmd
}

func newTimerStatusCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status TASK",
		Short: "Show the countdown state",
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

			view, err := a.Occurrences.Get(ctx, t.ID, day, nil)
			if err != nil {
				return err
			}
			if !view.HasTimer {
				fmt.Printf("%s has no timer\n", view.Title)
				return nil
			}

			state := "paused"
			if view.TimerRunning {
				state = "running"
			}
			if view.TimerRemain == 0 {
				state = "elapsed"
			}
			elapsed := view.TimerDuration - view.TimerRemain
			pct := 0.0
			if view.TimerDuration > 0 {
				pct = float64(elapsed) / float64(view.TimerDuration)
			}
			fmt.Printf("%s  %s\n%s  %s of %s (%s)\n",
				formatter.Bold(view.Title), formatter.Dim(state),
				formatter.RenderProgress(pct, 24),
				formatter.FormatSeconds(elapsed), formatter.FormatSeconds(view.TimerDuration),
				formatter.FormatSeconds(view.TimerRemain)+" left")
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Occurrence date (YYYY-MM-DD, default today)")

	return cmd
}

func newTimerWatchCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "watch TASK",
		Short: "Show the live countdown",
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
			return runWatch(a, t.ID, day)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Occurrence date (YYYY-MM-DD, default today)")

	return cmd
}

func runWatch(a *App, taskID string, day time.Time) error {
	view, err := a.Occurrences.Get(context.Background(), taskID, day, nil)
	if err != nil {
		return err
	}
	if !view.HasTimer {
		return fmt.Errorf("%s has no timer", view.Title)
	}

	model := timerwatch.New(a.Occurrences, view)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(timerwatch.Model); ok {
		if m.Err() != nil {
			return m.Err()
		}
		if m.Done() {
			fmt.Printf("Timer elapsed. Complete with: cadence complete %s\n", taskID)
		}
	}
	return nil
}
