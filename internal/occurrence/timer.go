package occurrence

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Elapsed returns the tracked timer seconds for an occurrence: banked
// seconds from finished runs plus the live run's delta, capped at the
// configured duration. The authoritative values are the duration, the
// banked seconds, and the start instant; nothing is written back.
func Elapsed(task domain.Task, rec *domain.OccurrenceRecord, now time.Time) int {
	if rec == nil {
		return 0
	}
	elapsed := rec.TimerAccumSec
	if rec.TimerStartedAt != nil {
		delta := int(now.Sub(*rec.TimerStartedAt).Seconds())
		if delta > 0 {
			elapsed += delta
		}
	}
	if task.Timer.DurationSec > 0 && elapsed > task.Timer.DurationSec {
		return task.Timer.DurationSec
	}
	return elapsed
}

// Remaining returns the seconds left on the countdown, monotonically
// non-increasing as now advances. Zero for tasks without a timer.
func Remaining(task domain.Task, rec *domain.OccurrenceRecord, now time.Time) int {
	if !task.Timer.Enabled {
		return 0
	}
	remaining := task.Timer.DurationSec - Elapsed(task, rec, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanComplete reports whether completion is currently permitted: always for
// tasks without a timer, otherwise only once the countdown has fully
// elapsed.
func CanComplete(task domain.Task, rec *domain.OccurrenceRecord, now time.Time) bool {
	if !task.Timer.Enabled {
		return true
	}
	return Remaining(task, rec, now) == 0
}
