package domain

import "errors"

var (
	// ErrNotFound indicates an unknown task, category, or occurrence.
	ErrNotFound = errors.New("not found")

	// ErrOccurrenceLocked indicates a mutation attempted on an overdue
	// occurrence. Overdue occurrences cannot be completed, edited, or
	// deleted through normal task mutation.
	ErrOccurrenceLocked = errors.New("occurrence is overdue and locked")

	// ErrTimerAlreadyStarted indicates a duplicate start on a running timer.
	ErrTimerAlreadyStarted = errors.New("timer already started")

	// ErrTimerNotElapsed indicates a completion attempt on a timer-gated
	// occurrence whose countdown has not fully elapsed.
	ErrTimerNotElapsed = errors.New("timer has not elapsed")

	// ErrInvalidRecurrence indicates a malformed recurrence descriptor,
	// such as a custom pattern with an empty weekday set.
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrInvalidInput indicates a malformed date, time, or field value.
	// Inputs are rejected rather than coerced.
	ErrInvalidInput = errors.New("invalid input")
)
