package testutil

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/google/uuid"
)

// Task options
type TaskOption func(*domain.Task)

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithCategory(id string) TaskOption {
	return func(t *domain.Task) {
		t.CategoryID = id
	}
}

func WithDeadline(hour, minute int) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = domain.Deadline{Enabled: true, Hour: hour, Minute: minute}
	}
}

func WithTimer(durationSec int) TaskOption {
	return func(t *domain.Task) {
		t.Timer = domain.Timer{Enabled: true, DurationSec: durationSec}
	}
}

func WithRecurrence(pattern domain.RecurrencePattern, weekdays ...time.Weekday) TaskOption {
	return func(t *domain.Task) {
		t.Recurrence = domain.Recurrence{Pattern: pattern, Weekdays: weekdays}
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

// NewTestTask builds a one-off medium-priority task scheduled on the given
// date.
func NewTestTask(title string, scheduled time.Time, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:            uuid.New().String(),
		Title:         title,
		Priority:      domain.PriorityMedium,
		ScheduledDate: domain.DateOf(scheduled),
		Recurrence:    domain.Recurrence{Pattern: domain.RecurrenceNone},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Category options
type CategoryOption func(*domain.Category)

func WithDefaultFlag() CategoryOption {
	return func(c *domain.Category) {
		c.IsDefault = true
	}
}

func NewTestCategory(name string, opts ...CategoryOption) *domain.Category {
	now := time.Now().UTC()
	c := &domain.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Record options
type RecordOption func(*domain.OccurrenceRecord)

func WithCompletedAt(at time.Time) RecordOption {
	return func(r *domain.OccurrenceRecord) {
		completed := at
		r.CompletedAt = &completed
	}
}

func WithTimerStartedAt(at time.Time) RecordOption {
	return func(r *domain.OccurrenceRecord) {
		started := at
		r.TimerStartedAt = &started
	}
}

func WithTimerAccum(sec int) RecordOption {
	return func(r *domain.OccurrenceRecord) {
		r.TimerAccumSec = sec
	}
}

func NewTestRecord(taskID string, date time.Time, opts ...RecordOption) *domain.OccurrenceRecord {
	r := &domain.OccurrenceRecord{
		TaskID: taskID,
		Date:   domain.DateOf(date),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
