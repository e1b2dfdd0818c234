package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/insight"
	"github.com/alexanderramin/cadence/internal/repository"
)

type streakService struct {
	tasks    repository.TaskRepo
	records  repository.OccurrenceRecordRepo
	settings repository.SettingsRepo
}

func NewStreakService(tasks repository.TaskRepo, records repository.OccurrenceRecordRepo, settings repository.SettingsRepo) StreakService {
	return &streakService{tasks: tasks, records: records, settings: settings}
}

// Summary qualifies each day of the requested window. The current streak
// is computed over the full history back to the earliest scheduled date,
// so a narrow display window does not truncate the trailing run.
func (s *streakService) Summary(ctx context.Context, req app.StreakSummaryRequest) (*insight.StreakSummary, error) {
	start := domain.DateOf(req.Start)
	end := domain.DateOf(req.End)
	if start.After(end) {
		return nil, fmt.Errorf("window start after end: %w", domain.ErrInvalidInput)
	}
	now := clockNow(req.Now)
	today := domain.DateOf(now)

	rule, err := loadRule(ctx, s.settings)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	historyStart := start
	if earliest, err := s.tasks.EarliestScheduledDate(ctx); err != nil {
		return nil, err
	} else if earliest != nil && domain.DateOf(*earliest).Before(historyStart) {
		historyStart = domain.DateOf(*earliest)
	}
	historyEnd := end
	if today.After(historyEnd) {
		historyEnd = today
	}

	counts, err := s.dayCounts(ctx, tasks, historyStart, historyEnd)
	if err != nil {
		return nil, err
	}

	full := insight.Summarize(rule, counts, today)

	var windowCounts []insight.DayCount
	for _, c := range counts {
		if c.Date.Before(start) || c.Date.After(end) {
			continue
		}
		windowCounts = append(windowCounts, c)
	}
	windowed := insight.Summarize(rule, windowCounts, today)
	windowed.CurrentStreak = full.CurrentStreak
	return &windowed, nil
}

func (s *streakService) Today(ctx context.Context, nowOverride *time.Time) (*app.StreakToday, error) {
	now := clockNow(nowOverride)
	today := domain.DateOf(now)

	summary, err := s.Summary(ctx, app.StreakSummaryRequest{Start: today, End: today, Now: &now})
	if err != nil {
		return nil, err
	}

	out := &app.StreakToday{Date: today, CurrentStreak: summary.CurrentStreak}
	for _, d := range summary.Days {
		if d.Date.Equal(today) {
			out.Scheduled = d.Scheduled
			out.Completed = d.Completed
			out.Ratio = d.Ratio
			out.Qualified = d.Qualified
		}
	}
	return out, nil
}

// dayCounts tallies scheduled and completed occurrences per day in
// [start, end].
func (s *streakService) dayCounts(ctx context.Context, tasks []*domain.Task, start, end time.Time) ([]insight.DayCount, error) {
	stored, err := s.records.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	idx := indexRecords(stored)

	scheduled := make(map[time.Time]int)
	completed := make(map[time.Time]int)
	for _, k := range expandAll(tasks, idx, start, end) {
		scheduled[k.Date]++
		if idx[k].Completed() {
			completed[k.Date]++
		}
	}

	var counts []insight.DayCount
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		counts = append(counts, insight.DayCount{Date: d, Scheduled: scheduled[d], Completed: completed[d]})
	}
	return counts, nil
}
