package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/insight"
	"github.com/alexanderramin/cadence/internal/occurrence"
	"github.com/alexanderramin/cadence/internal/repository"
)

type analyticsService struct {
	tasks      repository.TaskRepo
	records    repository.OccurrenceRecordRepo
	categories repository.CategoryRepo
}

func NewAnalyticsService(tasks repository.TaskRepo, records repository.OccurrenceRecordRepo, categories repository.CategoryRepo) AnalyticsService {
	return &analyticsService{tasks: tasks, records: records, categories: categories}
}

// Aggregate widens the reference date to its enclosing week, month, or
// year and reports totals, trend, category shares, and the
// productive-period ranking over that range.
func (s *analyticsService) Aggregate(ctx context.Context, req app.AnalyticsRequest) (*app.AnalyticsPayload, error) {
	now := clockNow(req.Now)

	var start, end time.Time
	switch req.GroupBy {
	case domain.GroupByWeek:
		start, end = weekBounds(req.Ref)
	case domain.GroupByMonth:
		start, end = monthBounds(req.Ref)
	case domain.GroupByYear:
		start, end = yearBounds(req.Ref)
	default:
		return nil, fmt.Errorf("group by %q: %w", req.GroupBy, domain.ErrInvalidInput)
	}

	resolved, err := s.resolveRange(ctx, start, end, now)
	if err != nil {
		return nil, err
	}

	report := insight.Aggregate(resolved, req.GroupBy, start, end)
	return &app.AnalyticsPayload{GroupBy: req.GroupBy, Start: start, End: end, Report: report}, nil
}

// WeeklyReview summarizes the Monday-based week containing req.Date.
// Overdue for past weeks is judged as of the week's final instant, not the
// current clock, so a review re-run later reports the same numbers.
func (s *analyticsService) WeeklyReview(ctx context.Context, req app.WeeklyReviewRequest) (*insight.WeeklyReview, error) {
	now := clockNow(req.Now)
	start, end := weekBounds(req.Date)

	statusAt := now
	weekClose := end.AddDate(0, 0, 1).Add(-time.Microsecond)
	if weekClose.Before(statusAt) {
		statusAt = weekClose
	}

	resolved, err := s.resolveRange(ctx, start, end, statusAt)
	if err != nil {
		return nil, err
	}

	created, err := s.tasks.CountCreatedBetween(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	timerSec := 0
	for _, r := range resolved {
		timerSec += r.TimerSec
	}

	review := insight.Review(insight.ReviewInput{
		WeekStart:    start,
		WeekEnd:      end,
		Occurrences:  resolved,
		TasksCreated: created,
		TimerSec:     timerSec,
	})
	return &review, nil
}

// resolveRange expands every task over [start, end] and resolves each
// occurrence's status and timer tally at the given instant.
func (s *analyticsService) resolveRange(ctx context.Context, start, end, at time.Time) ([]insight.Resolved, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.records.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	names, err := categoryNames(ctx, s.categories)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	idx := indexRecords(stored)

	var resolved []insight.Resolved
	for _, k := range expandAll(tasks, idx, start, end) {
		t := byID[k.TaskID]
		if t == nil {
			continue
		}
		rec := idx[k]
		r := insight.Resolved{
			TaskID:   t.ID,
			Category: names[t.CategoryID],
			Date:     k.Date,
			Status:   occurrence.Resolve(*t, k.Date, rec, at),
			TimerSec: occurrence.Elapsed(*t, rec, at),
		}
		if rec != nil {
			r.CompletedAt = rec.CompletedAt
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}
