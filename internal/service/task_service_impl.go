package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/occurrence"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks      repository.TaskRepo
	records    repository.OccurrenceRecordRepo
	categories repository.CategoryRepo
	uow        db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, records repository.OccurrenceRecordRepo, categories repository.CategoryRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, records: records, categories: categories, uow: uow}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if !t.ScheduledDate.IsZero() {
		t.ScheduledDate = domain.DateOf(t.ScheduledDate)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.CategoryID == "" {
		def, err := s.categories.GetDefault(ctx)
		if err != nil {
			return err
		}
		t.CategoryID = def.ID
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

// Update rewrites the definition. A one-off whose single occurrence has
// already gone overdue is locked against edits. When the recurrence shape,
// anchor, or deadline changes, uncompleted per-day facts from the earlier
// of the two anchors forward are discarded so the new shape regenerates
// cleanly; completions
// are always kept.
func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	t.ScheduledDate = domain.DateOf(t.ScheduledDate)
	if err := t.Validate(); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txRecords := repository.NewSQLiteOccurrenceRecordRepo(tx)

		prev, err := txTasks.GetByID(ctx, t.ID)
		if err != nil {
			return err
		}
		if err := s.ensureUnlocked(ctx, txRecords, prev, time.Now().UTC()); err != nil {
			return err
		}

		if scheduleChanged(prev, t) {
			from := prev.ScheduledDate
			if t.ScheduledDate.Before(from) {
				from = t.ScheduledDate
			}
			if err := txRecords.DeleteUncompletedFrom(ctx, t.ID, from); err != nil {
				return err
			}
		}

		t.CreatedAt = prev.CreatedAt
		t.UpdatedAt = time.Now().UTC()
		return txTasks.Update(ctx, t)
	})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txRecords := repository.NewSQLiteOccurrenceRecordRepo(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ensureUnlocked(ctx, txRecords, t, time.Now().UTC()); err != nil {
			return err
		}
		if err := txRecords.DeleteByTask(ctx, id); err != nil {
			return err
		}
		return txTasks.Delete(ctx, id)
	})
}

// ensureUnlocked rejects mutation of a non-recurring task whose single
// occurrence resolved to overdue. Recurring tasks stay editable; locking
// them would freeze the whole series over one missed day.
func (s *taskService) ensureUnlocked(ctx context.Context, records repository.OccurrenceRecordRepo, t *domain.Task, now time.Time) error {
	if t.IsRecurring() {
		return nil
	}
	rec, err := records.Get(ctx, t.ID, t.ScheduledDate)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		rec = nil
	}
	if occurrence.Resolve(*t, t.ScheduledDate, rec, now) == domain.OccurrenceOverdue {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrOccurrenceLocked)
	}
	return nil
}

// scheduleChanged reports whether the edit altered which days the task
// occurs on or when its occurrences fall due.
func scheduleChanged(prev, next *domain.Task) bool {
	if !prev.ScheduledDate.Equal(next.ScheduledDate) {
		return true
	}
	if prev.Recurrence.Pattern != next.Recurrence.Pattern {
		return true
	}
	if prev.Deadline != next.Deadline {
		return true
	}
	if len(prev.Recurrence.Weekdays) != len(next.Recurrence.Weekdays) {
		return true
	}
	prevSet := prev.Recurrence.WeekdaySet()
	for _, d := range next.Recurrence.Weekdays {
		if !prevSet[d] {
			return true
		}
	}
	return false
}
