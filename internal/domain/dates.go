package domain

import (
	"fmt"
	"time"
)

// DateOf truncates an instant to its UTC calendar day (midnight UTC).
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, ErrInvalidInput)
	}
	return t, nil
}

// ParseDeadline parses an HH:MM time-of-day into an enabled Deadline.
func ParseDeadline(s string) (Deadline, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Deadline{}, fmt.Errorf("deadline time %q: %w", s, ErrInvalidInput)
	}
	return Deadline{Enabled: true, Hour: t.Hour(), Minute: t.Minute()}, nil
}

// SameDate reports whether two instants fall on the same UTC calendar day.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
