package domain

import (
	"fmt"
	"time"
)

// Recurrence describes how a task repeats. Weekdays is consulted only for
// the custom pattern and uses 0=Sunday..6=Saturday, matching time.Weekday.
type Recurrence struct {
	Pattern  RecurrencePattern
	Weekdays []time.Weekday
}

func (r Recurrence) IsRecurring() bool {
	return r.Pattern != "" && r.Pattern != RecurrenceNone
}

// WeekdaySet returns the custom weekday mask as a lookup set.
func (r Recurrence) WeekdaySet() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(r.Weekdays))
	for _, d := range r.Weekdays {
		set[d] = true
	}
	return set
}

// Deadline is an optional time-of-day cutoff applied to each occurrence date.
// When disabled, an occurrence's deadline is the end of its calendar day.
type Deadline struct {
	Enabled bool
	Hour    int
	Minute  int
}

func (d Deadline) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// Timer is an optional countdown gating completion: the occurrence can only
// be completed once DurationSec seconds have been tracked.
type Timer struct {
	Enabled     bool
	DurationSec int
}

// Task is a task definition. For recurring tasks ScheduledDate anchors the
// recurrence; per-day completion and timer state live in OccurrenceRecord.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	CategoryID  string

	ScheduledDate time.Time
	Deadline      Deadline
	Timer         Timer
	Recurrence    Recurrence

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Task) IsRecurring() bool {
	return t.Recurrence.IsRecurring()
}

// Validate checks structural invariants of the definition.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	if t.Priority != "" && !ValidPriorities[string(t.Priority)] {
		return fmt.Errorf("priority %q: %w", t.Priority, ErrInvalidInput)
	}
	if t.ScheduledDate.IsZero() {
		return fmt.Errorf("scheduled date is required: %w", ErrInvalidInput)
	}
	if t.Deadline.Enabled {
		if t.Deadline.Hour < 0 || t.Deadline.Hour > 23 || t.Deadline.Minute < 0 || t.Deadline.Minute > 59 {
			return fmt.Errorf("deadline time %s: %w", t.Deadline, ErrInvalidInput)
		}
	}
	if t.Timer.Enabled && t.Timer.DurationSec <= 0 {
		return fmt.Errorf("timer duration must be positive: %w", ErrInvalidInput)
	}
	switch t.Recurrence.Pattern {
	case "", RecurrenceNone, RecurrenceDaily, RecurrenceMonthly, RecurrenceYearly:
	case RecurrenceCustom:
		if len(t.Recurrence.Weekdays) == 0 {
			return fmt.Errorf("custom recurrence requires at least one weekday: %w", ErrInvalidRecurrence)
		}
		for _, d := range t.Recurrence.Weekdays {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("weekday %d out of range: %w", d, ErrInvalidRecurrence)
			}
		}
	default:
		return fmt.Errorf("pattern %q: %w", t.Recurrence.Pattern, ErrInvalidRecurrence)
	}
	return nil
}
