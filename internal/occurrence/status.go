package occurrence

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// DueAt returns the instant at which an occurrence on the given date stops
// being completable. With a deadline time configured it is that time on the
// occurrence's date; otherwise the end of the occurrence's UTC calendar day.
func DueAt(task domain.Task, date time.Time) time.Time {
	day := domain.DateOf(date)
	if task.Deadline.Enabled {
		return day.Add(time.Duration(task.Deadline.Hour)*time.Hour + time.Duration(task.Deadline.Minute)*time.Minute)
	}
	return day.AddDate(0, 0, 1)
}

// Overdue reports whether an uncompleted occurrence on the given date has
// passed its deadline. With a deadline time the cutoff is strict (now must
// be past it); without one the occurrence survives until its calendar day
// is over.
func Overdue(task domain.Task, date time.Time, now time.Time) bool {
	if task.Deadline.Enabled {
		return now.After(DueAt(task, date))
	}
	return domain.DateOf(now).After(domain.DateOf(date))
}

// Resolve computes the occurrence's status at the given instant. The record
// may be nil (no durable facts yet). Completion is terminal: a completed
// occurrence never resolves to overdue at any later instant, and an overdue
// occurrence never becomes completed.
func Resolve(task domain.Task, date time.Time, rec *domain.OccurrenceRecord, now time.Time) domain.OccurrenceStatus {
	if rec.Completed() {
		return domain.OccurrenceCompleted
	}
	if Overdue(task, date, now) {
		return domain.OccurrenceOverdue
	}
	return domain.OccurrencePending
}
