package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/occurrence"
	"github.com/alexanderramin/cadence/internal/repository"
)

// clockNow returns the override when the caller supplied one, otherwise
// the current UTC time. Every service accepts the override so behavior
// around day boundaries stays testable.
func clockNow(override *time.Time) time.Time {
	if override != nil {
		return override.UTC()
	}
	return time.Now().UTC()
}

type occurrenceKey struct {
	TaskID string
	Date   time.Time
}

func keyOf(taskID string, date time.Time) occurrenceKey {
	return occurrenceKey{TaskID: taskID, Date: domain.DateOf(date)}
}

// recordIndex maps (task, day) pairs to their stored record, if any.
type recordIndex map[occurrenceKey]*domain.OccurrenceRecord

func indexRecords(records []*domain.OccurrenceRecord) recordIndex {
	idx := make(recordIndex, len(records))
	for _, r := range records {
		idx[keyOf(r.TaskID, r.Date)] = r
	}
	return idx
}

// expandAll enumerates every (task, day) pair in [start, end]. Completed
// records whose day the recurrence no longer produces are still included,
// so a completion survives a later edit of the task's schedule.
func expandAll(tasks []*domain.Task, records recordIndex, start, end time.Time) []occurrenceKey {
	seen := make(map[occurrenceKey]struct{})
	var keys []occurrenceKey
	for _, t := range tasks {
		for _, d := range occurrence.Expand(*t, start, end) {
			k := keyOf(t.ID, d)
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	start = domain.DateOf(start)
	end = domain.DateOf(end)
	for k, r := range records {
		if !r.Completed() {
			continue
		}
		if k.Date.Before(start) || k.Date.After(end) {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

func buildView(t *domain.Task, category string, date time.Time, rec *domain.OccurrenceRecord, now time.Time) app.OccurrenceView {
	v := app.OccurrenceView{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Category:    category,
		Date:        domain.DateOf(date),
		Status:      occurrence.Resolve(*t, date, rec, now),
		IsRecurring: t.Recurrence.IsRecurring(),
	}
	if t.Deadline.Enabled {
		v.HasDeadline = true
		v.DeadlineTime = t.Deadline.String()
	}
	if t.Timer.Enabled {
		v.HasTimer = true
		v.TimerDuration = t.Timer.DurationSec
		v.TimerRemain = occurrence.Remaining(*t, rec, now)
		v.TimerRunning = rec.TimerRunning()
	}
	if rec != nil {
		v.CompletedAt = rec.CompletedAt
	}
	return v
}

func sortViews(views []app.OccurrenceView, tasks map[string]*domain.Task) {
	sort.Slice(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		ta, tb := tasks[a.TaskID], tasks[b.TaskID]
		if ta != nil && tb != nil && !ta.CreatedAt.Equal(tb.CreatedAt) {
			return ta.CreatedAt.Before(tb.CreatedAt)
		}
		return a.TaskID < b.TaskID
	})
}

// loadRule fetches the streak rule, falling back to defaults when no
// settings row has been written yet.
func loadRule(ctx context.Context, settings repository.SettingsRepo) (domain.StreakRule, error) {
	s, err := settings.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultSettings().Streak, nil
		}
		return domain.StreakRule{}, err
	}
	return s.Streak.Normalized(), nil
}

func categoryNames(ctx context.Context, categories repository.CategoryRepo) (map[string]string, error) {
	all, err := categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, c := range all {
		names[c.ID] = c.Name
	}
	return names, nil
}

// weekBounds returns the Monday and Sunday of the week containing day.
func weekBounds(day time.Time) (time.Time, time.Time) {
	d := domain.DateOf(day)
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

func monthBounds(day time.Time) (time.Time, time.Time) {
	d := domain.DateOf(day)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func yearBounds(day time.Time) (time.Time, time.Time) {
	d := domain.DateOf(day)
	start := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}
