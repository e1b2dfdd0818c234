package domain

import "time"

// Occurrence is one concrete due instance of a task: a (task, date) pair.
// Occurrences are derived from definitions, never stored.
type Occurrence struct {
	TaskID string
	Date   time.Time
}

// OccurrenceRecord is the durable fact set for one occurrence, keyed by
// (TaskID, Date). Status is never stored; it is always recomputed from
// these facts plus the current instant.
type OccurrenceRecord struct {
	TaskID string
	Date   time.Time

	// CompletedAt is non-nil once the occurrence was completed. At most
	// one completion exists per occurrence.
	CompletedAt *time.Time

	// TimerStartedAt is non-nil while a timer run is live. Banked elapsed
	// time from earlier runs accumulates in TimerAccumSec.
	TimerStartedAt *time.Time
	TimerAccumSec  int
}

// Completed reports whether a completion fact exists. Safe on a nil record.
func (r *OccurrenceRecord) Completed() bool {
	return r != nil && r.CompletedAt != nil
}

// TimerRunning reports whether a timer run is live. Safe on a nil record.
func (r *OccurrenceRecord) TimerRunning() bool {
	return r != nil && r.TimerStartedAt != nil
}
