package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/insight"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// OccurrenceService lists resolved occurrences and performs the per-day
// mutations: completion and timer start/stop.
type OccurrenceService interface {
	ListRange(ctx context.Context, req app.ListOccurrencesRequest) ([]app.OccurrenceView, error)
	ListDay(ctx context.Context, date time.Time, status string, now *time.Time) ([]app.OccurrenceView, error)
	Get(ctx context.Context, taskID string, date time.Time, now *time.Time) (*app.OccurrenceView, error)
	Complete(ctx context.Context, taskID string, date time.Time, now *time.Time) (*app.OccurrenceView, error)
	StartTimer(ctx context.Context, taskID string, date time.Time, now *time.Time) (*app.OccurrenceView, error)
	StopTimer(ctx context.Context, taskID string, date time.Time, now *time.Time) (*app.OccurrenceView, error)
}

type StreakService interface {
	Summary(ctx context.Context, req app.StreakSummaryRequest) (*insight.StreakSummary, error)
	Today(ctx context.Context, now *time.Time) (*app.StreakToday, error)
}

type AnalyticsService interface {
	Aggregate(ctx context.Context, req app.AnalyticsRequest) (*app.AnalyticsPayload, error)
	WeeklyReview(ctx context.Context, req app.WeeklyReviewRequest) (*insight.WeeklyReview, error)
}

type CategoryService interface {
	EnsureDefault(ctx context.Context) (*domain.Category, error)
	Create(ctx context.Context, name, color, icon string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Rename(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	UpdateStreakRule(ctx context.Context, rule domain.StreakRule) (*domain.Settings, error)
}
