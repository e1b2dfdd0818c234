package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Task, error)
	// EarliestScheduledDate returns nil when no tasks exist.
	EarliestScheduledDate(ctx context.Context) (*time.Time, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error)
	ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID string) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	GetDefault(ctx context.Context) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// OccurrenceRecordRepo stores the durable per-occurrence facts keyed by
// (taskID, date): completion instant and timer state. Derived status never
// touches this store.
type OccurrenceRecordRepo interface {
	Get(ctx context.Context, taskID string, date time.Time) (*domain.OccurrenceRecord, error)
	ListRange(ctx context.Context, start, end time.Time) ([]*domain.OccurrenceRecord, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.OccurrenceRecord, error)
	// Upsert writes the record's facts. An existing completion instant is
	// preserved, never overwritten, so replayed completes stay idempotent.
	Upsert(ctx context.Context, rec *domain.OccurrenceRecord) error
	// DeleteUncompletedFrom discards non-completed facts for a task from
	// the given date forward, used when a recurrence shape changes.
	DeleteUncompletedFrom(ctx context.Context, taskID string, from time.Time) error
	DeleteByTask(ctx context.Context, taskID string) error
}

type SettingsRepo interface {
	// Get returns ErrNotFound when no settings row exists yet; callers
	// fall back to domain defaults.
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}
