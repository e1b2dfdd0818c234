// Package occurrence turns task definitions into concrete per-day
// obligations and resolves their status over time. Every function here is
// pure: same inputs, same outputs, no persistence.
package occurrence

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Expand returns the sorted calendar dates in [rangeStart, rangeEnd] on
// which the task is due. Dates before the task's anchor date are never
// generated, even when the range requests them. An inverted range yields
// an empty result, not an error.
func Expand(task domain.Task, rangeStart, rangeEnd time.Time) []time.Time {
	rangeStart = domain.DateOf(rangeStart)
	rangeEnd = domain.DateOf(rangeEnd)
	if rangeStart.After(rangeEnd) {
		return nil
	}

	anchor := domain.DateOf(task.ScheduledDate)
	if anchor.After(rangeEnd) {
		return nil
	}

	effectiveStart := rangeStart
	if anchor.After(effectiveStart) {
		effectiveStart = anchor
	}

	if !task.IsRecurring() {
		return singleDate(anchor, effectiveStart, rangeEnd)
	}

	switch task.Recurrence.Pattern {
	case domain.RecurrenceDaily:
		return dailyDates(effectiveStart, rangeEnd)
	case domain.RecurrenceMonthly:
		return monthlyDates(effectiveStart, rangeEnd, anchor.Day())
	case domain.RecurrenceYearly:
		return yearlyDates(effectiveStart, rangeEnd, anchor.Month(), anchor.Day())
	case domain.RecurrenceCustom:
		set := task.Recurrence.WeekdaySet()
		if len(set) == 0 {
			// Malformed descriptors are rejected at creation; degrade to
			// the one-off shape rather than guessing weekdays.
			return singleDate(anchor, effectiveStart, rangeEnd)
		}
		return weekdayDates(effectiveStart, rangeEnd, set)
	default:
		return singleDate(anchor, effectiveStart, rangeEnd)
	}
}

// OccursOn reports whether the task is due on the given date.
func OccursOn(task domain.Task, date time.Time) bool {
	return len(Expand(task, date, date)) > 0
}

func singleDate(anchor, start, end time.Time) []time.Time {
	if anchor.Before(start) || anchor.After(end) {
		return nil
	}
	return []time.Time{anchor}
}

func dailyDates(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// monthlyDates emits the anchor's day-of-month for each month in range.
// Months too short for the target day contribute nothing; clamping to
// month-end would silently change the occurrence's meaning.
func monthlyDates(start, end time.Time, day int) []time.Time {
	var dates []time.Time
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		if day <= daysInMonth(cursor.Year(), cursor.Month()) {
			candidate := time.Date(cursor.Year(), cursor.Month(), day, 0, 0, 0, 0, time.UTC)
			if !candidate.Before(start) && !candidate.After(end) {
				dates = append(dates, candidate)
			}
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return dates
}

// yearlyDates emits (month, day) for each year in range, skipping years
// where the combination does not exist (Feb 29 off leap years).
func yearlyDates(start, end time.Time, month time.Month, day int) []time.Time {
	var dates []time.Time
	for year := start.Year(); year <= end.Year(); year++ {
		if day > daysInMonth(year, month) {
			continue
		}
		candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if !candidate.Before(start) && !candidate.After(end) {
			dates = append(dates, candidate)
		}
	}
	return dates
}

func weekdayDates(start, end time.Time, set map[time.Weekday]bool) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if set[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
