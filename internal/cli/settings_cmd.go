package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	cmd.AddCommand(newSettingsShowCmd(a), newSettingsSetCmd(a))

	return cmd
}

func newSettingsShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Settings.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header("Settings"))
			fmt.Printf("%s  %d\n", formatter.Dim("MIN DAILY TASKS  "), s.Streak.MinDailyTasks)
			fmt.Printf("%s  %d%%\n", formatter.Dim("THRESHOLD PERCENT"), s.Streak.ThresholdPercent)
			return nil
		},
	}
}

func newSettingsSetCmd(a *App) *cobra.Command {
	var minDaily, threshold int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the streak qualification rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			current, err := a.Settings.Get(ctx)
			if err != nil {
				return err
			}

			rule := current.Streak
			if cmd.Flags().Changed("min-daily") {
				rule.MinDailyTasks = minDaily
			}
			if cmd.Flags().Changed("threshold") {
				rule.ThresholdPercent = threshold
			}

			updated, err := a.Settings.UpdateStreakRule(ctx, domain.StreakRule{
				MinDailyTasks:    rule.MinDailyTasks,
				ThresholdPercent: rule.ThresholdPercent,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Streak rule: %d+ tasks at %d%%\n", updated.Streak.MinDailyTasks, updated.Streak.ThresholdPercent)
			return nil
		},
	}

	cmd.Flags().IntVar(&minDaily, "min-daily", 0, "Minimum scheduled tasks for a day to qualify")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Completion percentage required for a day to qualify")

	return cmd
}
