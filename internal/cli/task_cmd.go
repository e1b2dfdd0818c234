package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage task definitions",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskInspectCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, description, priority, category, date, deadline, recur, weekdays string
	var timerMin int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if title == "" && app.Interactive {
				if err := runTaskForm(&title, &description, &priority, &date, &recur); err != nil {
					return err
				}
			}

			t := &domain.Task{
				Title:       title,
				Description: description,
				Priority:    domain.Priority(priority),
			}

			if date == "" {
				date = time.Now().UTC().Format(time.DateOnly)
			}
			scheduled, err := domain.ParseDate(date)
			if err != nil {
				return err
			}
			t.ScheduledDate = scheduled

			if deadline != "" {
				d, err := domain.ParseDeadline(deadline)
				if err != nil {
					return err
				}
				t.Deadline = d
			}
			if timerMin > 0 {
				t.Timer = domain.Timer{Enabled: true, DurationSec: timerMin * 60}
			}

			rec, err := parseRecurrence(recur, weekdays)
			if err != nil {
				return err
			}
			t.Recurrence = rec

			if category != "" {
				c, err := resolveCategory(ctx, app, category)
				if err != nil {
					return err
				}
				t.CategoryID = c.ID
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Created task %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&category, "category", "", "Category name or ID")
	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline time of day (HH:MM)")
	cmd.Flags().StringVar(&recur, "recur", "", "Recurrence (none|daily|monthly|yearly|custom)")
	cmd.Flags().StringVar(&weekdays, "weekdays", "", "Comma-separated weekdays for custom recurrence (0=Sunday..6=Saturday)")
	cmd.Flags().IntVar(&timerMin, "timer", 0, "Countdown timer in minutes; completion requires the timer to elapse")

	return cmd
}

// runTaskForm collects the basics interactively when no --title was given.
func runTaskForm(title, description, priority, date, recur *string) error {
	if *date == "" {
		*date = time.Now().UTC().Format(time.DateOnly)
	}
	if *priority == "" {
		*priority = string(domain.PriorityMedium)
	}
	if *recur == "" {
		*recur = string(domain.RecurrenceNone)
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(title).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
			huh.NewInput().Title("Description").Value(description),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("Low", string(domain.PriorityLow)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("High", string(domain.PriorityHigh)),
				).Value(priority),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(date),
			huh.NewSelect[string]().Title("Repeats").
				Options(
					huh.NewOption("Never", string(domain.RecurrenceNone)),
					huh.NewOption("Daily", string(domain.RecurrenceDaily)),
					huh.NewOption("Monthly", string(domain.RecurrenceMonthly)),
					huh.NewOption("Yearly", string(domain.RecurrenceYearly)),
				).Value(recur),
		),
	)
	return form.Run()
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List task definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tasks, err := app.Tasks.List(ctx)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks yet. Create one with: cadence task add --title ...")
				return nil
			}

			headers := []string{"ID", "TITLE", "PRIORITY", "DATE", "REPEATS"}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				repeats := string(t.Recurrence.Pattern)
				if repeats == "" {
					repeats = string(domain.RecurrenceNone)
				}
				rows = append(rows, []string{
					formatter.TruncID(t.ID),
					t.Title,
					formatter.PriorityLabel(t.Priority),
					t.ScheduledDate.Format(time.DateOnly),
					repeats,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTaskInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(fmt.Sprintf("%s  %s\n\n", formatter.Bold(t.Title), formatter.PriorityLabel(t.Priority)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("ID      "), formatter.TruncID(t.ID)))
			if t.Description != "" {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("DESC    "), t.Description))
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("DATE    "), formatter.HumanDate(t.ScheduledDate)))
			if t.Deadline.Enabled {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("DEADLINE"), t.Deadline.String()))
			}
			if t.Timer.Enabled {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("TIMER   "), formatter.FormatSeconds(t.Timer.DurationSec)))
			}
			if t.IsRecurring() {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("REPEATS "), string(t.Recurrence.Pattern)))
				if t.Recurrence.Pattern == domain.RecurrenceCustom {
					b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("DAYS    "), weekdayNames(t.Recurrence.Weekdays)))
				}
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("UPDATED "), formatter.HumanTimestamp(t.UpdatedAt)))

			fmt.Print(formatter.RenderBox("Task", b.String()))
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var title, description, priority, category, date, deadline, recur, weekdays string
	var timerMin int
	var clearDeadline, clearTimer bool

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a task definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				t.Title = title
			}
			if cmd.Flags().Changed("desc") {
				t.Description = description
			}
			if cmd.Flags().Changed("priority") {
				t.Priority = domain.Priority(priority)
			}
			if cmd.Flags().Changed("date") {
				scheduled, err := domain.ParseDate(date)
				if err != nil {
					return err
				}
				t.ScheduledDate = scheduled
			}
			if cmd.Flags().Changed("deadline") {
				d, err := domain.ParseDeadline(deadline)
				if err != nil {
					return err
				}
				t.Deadline = d
			}
			if clearDeadline {
				t.Deadline = domain.Deadline{}
			}
			if cmd.Flags().Changed("timer") {
				t.Timer = domain.Timer{Enabled: timerMin > 0, DurationSec: timerMin * 60}
			}
			if clearTimer {
				t.Timer = domain.Timer{}
			}
			if cmd.Flags().Changed("recur") || cmd.Flags().Changed("weekdays") {
				pattern := string(t.Recurrence.Pattern)
				if cmd.Flags().Changed("recur") {
					pattern = recur
				}
				rec, err := parseRecurrence(pattern, weekdays)
				if err != nil {
					return err
				}
				t.Recurrence = rec
			}
			if cmd.Flags().Changed("category") {
				c, err := resolveCategory(ctx, app, category)
				if err != nil {
					return err
				}
				t.CategoryID = c.ID
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&category, "category", "", "Category name or ID")
	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline time of day (HH:MM)")
	cmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "Remove the deadline")
	cmd.Flags().StringVar(&recur, "recur", "", "Recurrence (none|daily|monthly|yearly|custom)")
	cmd.Flags().StringVar(&weekdays, "weekdays", "", "Comma-separated weekdays for custom recurrence (0=Sunday..6=Saturday)")
	cmd.Flags().IntVar(&timerMin, "timer", 0, "Countdown timer in minutes")
	cmd.Flags().BoolVar(&clearTimer, "clear-timer", false, "Remove the timer")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a task and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", t.Title)
			return nil
		},
	}
}

// parseRecurrence builds a recurrence from the pattern flag and the
// optional weekday list.
func parseRecurrence(pattern, weekdays string) (domain.Recurrence, error) {
	if pattern == "" {
		pattern = string(domain.RecurrenceNone)
	}
	rec := domain.Recurrence{Pattern: domain.RecurrencePattern(pattern)}
	if weekdays == "" {
		return rec, nil
	}
	for _, part := range strings.Split(weekdays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return domain.Recurrence{}, fmt.Errorf("weekday %q: %w", part, domain.ErrInvalidRecurrence)
		}
		rec.Weekdays = append(rec.Weekdays, time.Weekday(n))
	}
	return rec, nil
}

var weekdayShort = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func weekdayNames(days []time.Weekday) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, weekdayShort[int(d)%7])
	}
	return strings.Join(names, ", ")
}
