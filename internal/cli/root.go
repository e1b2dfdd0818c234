package cli

import (
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks       service.TaskService
	Occurrences service.OccurrenceService
	Streaks     service.StreakService
	Analytics   service.AnalyticsService
	Categories  service.CategoryService
	Settings    service.SettingsService

	// Interactive is true when stdin is a terminal, enabling prompt-based
	// flows where flags were omitted.
	Interactive bool
}

// NewRootCmd creates the top-level "cadence" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "cadence",
		Short:        "Recurring task tracker with streaks and reviews",
		SilenceUsage: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newListCmd(app),
		newTodayCmd(app),
		newCompleteCmd(app),
		newTimerCmd(app),
		newStreakCmd(app),
		newStatsCmd(app),
		newReviewCmd(app),
		newCategoryCmd(app),
		newSettingsCmd(app),
	)

	return root
}
