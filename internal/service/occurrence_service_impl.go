package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/occurrence"
	"github.com/alexanderramin/cadence/internal/repository"
)

type occurrenceService struct {
	tasks      repository.TaskRepo
	records    repository.OccurrenceRecordRepo
	categories repository.CategoryRepo
	uow        db.UnitOfWork
}

func NewOccurrenceService(tasks repository.TaskRepo, records repository.OccurrenceRecordRepo, categories repository.CategoryRepo, uow db.UnitOfWork) OccurrenceService {
	return &occurrenceService{tasks: tasks, records: records, categories: categories, uow: uow}
}

func (s *occurrenceService) ListRange(ctx context.Context, req app.ListOccurrencesRequest) ([]app.OccurrenceView, error) {
	if req.Status != "" && !domain.ValidStatusFilters[req.Status] {
		return nil, fmt.Errorf("status filter %q: %w", req.Status, domain.ErrInvalidInput)
	}
	now := clockNow(req.Now)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.records.ListRange(ctx, req.Start, req.End)
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

	views := make([]app.OccurrenceView, 0)
	for _, k := range expandAll(tasks, idx, req.Start, req.End) {
		t := byID[k.TaskID]
		if t == nil {
			continue
		}
		v := buildView(t, names[t.CategoryID], k.Date, idx[k], now)
		if req.Status != "" && string(v.Status) != req.Status {
			continue
		}
		views = append(views, v)
	}
	sortViews(views, byID)
	return views, nil
}

func (s *occurrenceService) ListDay(ctx context.Context, date time.Time, status string, now *time.Time) ([]app.OccurrenceView, error) {
	return s.ListRange(ctx, app.ListOccurrencesRequest{Start: date, End: date, Status: status, Now: now})
}

func (s *occurrenceService) Get(ctx context.Context, taskID string, date time.Time, now *time.Time) (*app.OccurrenceView, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	rec, err := s.loadRecord(ctx, s.records, taskID, date)
	if err != nil {
		return nil, err
	}
	if !occurrence.OccursOn(*t, date) && !rec.Completed() {
		return nil, fmt.Errorf("task %s has no occurrence on %s: %w", taskID, domain.DateOf(date).Format(time.DateOnly), domain.ErrNotFound)
	}
	name, err := s.categoryName(ctx, t.CategoryID)
	if err != nil {
		return nil, err
	}
	v := buildView(t, name, date, rec, clockNow(now))
	return &v, nil
}

// Complete marks the occurrence completed. Completing an already-completed
// occurrence is a no-op success. An overdue occurrence cannot be completed,
// and a timer-gated one only once its countdown has fully elapsed. A live
// timer run is banked as part of the same transaction.
func (s *occurrenceService) Complete(ctx context.Context, taskID string, date time.Time, nowOverride *time.Time) (*app.OccurrenceView, error) {
	now := clockNow(nowOverride)
	var view *app.OccurrenceView

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txRecords := repository.NewSQLiteOccurrenceRecordRepo(tx)

		t, rec, err := s.loadOccurrence(ctx, txTasks, txRecords, taskID, date)
		if err != nil {
			return err
		}

		switch occurrence.Resolve(*t, date, rec, now) {
		case domain.OccurrenceCompleted:
			return nil
		case domain.OccurrenceOverdue:
			return fmt.Errorf("occurrence %s/%s: %w", taskID, domain.DateOf(date).Format(time.DateOnly), domain.ErrOccurrenceLocked)
		}
		if !occurrence.CanComplete(*t, rec, now) {
			return fmt.Errorf("%d seconds remain: %w", occurrence.Remaining(*t, rec, now), domain.ErrTimerNotElapsed)
		}

		if rec == nil {
			rec = &domain.OccurrenceRecord{TaskID: taskID, Date: domain.DateOf(date)}
		}
		rec.TimerAccumSec = occurrence.Elapsed(*t, rec, now)
		rec.TimerStartedAt = nil
		completedAt := now
		rec.CompletedAt = &completedAt
		return txRecords.Upsert(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	view, err = s.Get(ctx, taskID, date, &now)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// StartTimer begins, or resumes, the countdown for a timer task's
// occurrence. Only pending occurrences accept a start, and at most one run
// may be live at a time.
func (s *occurrenceService) StartTimer(ctx context.Context, taskID string, date time.Time, nowOverride *time.Time) (*app.OccurrenceView, error) {
	now := clockNow(nowOverride)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txRecords := repository.NewSQLiteOccurrenceRecordRepo(tx)

		t, rec, err := s.loadOccurrence(ctx, txTasks, txRecords, taskID, date)
		if err != nil {
			return err
		}
		if !t.Timer.Enabled {
			return fmt.Errorf("task %s has no timer: %w", taskID, domain.ErrInvalidInput)
		}
		if occurrence.Resolve(*t, date, rec, now) != domain.OccurrencePending {
			return fmt.Errorf("occurrence %s/%s: %w", taskID, domain.DateOf(date).Format(time.DateOnly), domain.ErrOccurrenceLocked)
		}
		if rec.TimerRunning() {
			return fmt.Errorf("occurrence %s/%s: %w", taskID, domain.DateOf(date).Format(time.DateOnly), domain.ErrTimerAlreadyStarted)
		}

		if rec == nil {
			rec = &domain.OccurrenceRecord{TaskID: taskID, Date: domain.DateOf(date)}
		}
		startedAt := now
		rec.TimerStartedAt = &startedAt
		return txRecords.Upsert(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, taskID, date, &now)
}

// StopTimer banks the live run's elapsed seconds. Stopping with no live
// run is a no-op success.
func (s *occurrenceService) StopTimer(ctx context.Context, taskID string, date time.Time, nowOverride *time.Time) (*app.OccurrenceView, error) {
	now := clockNow(nowOverride)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txRecords := repository.NewSQLiteOccurrenceRecordRepo(tx)

		t, rec, err := s.loadOccurrence(ctx, txTasks, txRecords, taskID, date)
		if err != nil {
			return err
		}
		if !rec.TimerRunning() {
			return nil
		}
		rec.TimerAccumSec = occurrence.Elapsed(*t, rec, now)
		rec.TimerStartedAt = nil
		return txRecords.Upsert(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, taskID, date, &now)
}

func (s *occurrenceService) loadOccurrence(ctx context.Context, tasks repository.TaskRepo, records repository.OccurrenceRecordRepo, taskID string, date time.Time) (*domain.Task, *domain.OccurrenceRecord, error) {
	t, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if !occurrence.OccursOn(*t, date) {
		return nil, nil, fmt.Errorf("task %s has no occurrence on %s: %w", taskID, domain.DateOf(date).Format(time.DateOnly), domain.ErrNotFound)
	}
	rec, err := s.loadRecord(ctx, records, taskID, date)
	if err != nil {
		return nil, nil, err
	}
	return t, rec, nil
}

func (s *occurrenceService) loadRecord(ctx context.Context, records repository.OccurrenceRecordRepo, taskID string, date time.Time) (*domain.OccurrenceRecord, error) {
	rec, err := records.Get(ctx, taskID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *occurrenceService) categoryName(ctx context.Context, categoryID string) (string, error) {
	if categoryID == "" {
		return "", nil
	}
	c, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return c.Name, nil
}
