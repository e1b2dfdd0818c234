package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask() *Task {
	return &Task{
		ID:            "t1",
		Title:         "Read chapter",
		Priority:      PriorityMedium,
		ScheduledDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validTask().Validate())
}

func TestValidate_TitleRequired(t *testing.T) {
	task := validTask()
	task.Title = ""
	assert.ErrorIs(t, task.Validate(), ErrInvalidInput)
}

func TestValidate_BadPriority(t *testing.T) {
	task := validTask()
	task.Priority = "urgent"
	assert.ErrorIs(t, task.Validate(), ErrInvalidInput)
}

func TestValidate_ScheduledDateRequired(t *testing.T) {
	task := validTask()
	task.ScheduledDate = time.Time{}
	assert.ErrorIs(t, task.Validate(), ErrInvalidInput)
}

func TestValidate_DeadlineBounds(t *testing.T) {
	task := validTask()
	task.Deadline = Deadline{Enabled: true, Hour: 24, Minute: 0}
	assert.ErrorIs(t, task.Validate(), ErrInvalidInput)

	task.Deadline = Deadline{Enabled: true, Hour: 23, Minute: 59}
	assert.NoError(t, task.Validate())
}

func TestValidate_TimerDurationPositive(t *testing.T) {
	task := validTask()
	task.Timer = Timer{Enabled: true, DurationSec: 0}
	assert.ErrorIs(t, task.Validate(), ErrInvalidInput)

	task.Timer = Timer{Enabled: true, DurationSec: 1500}
	assert.NoError(t, task.Validate())
}

func TestValidate_CustomRecurrenceNeedsWeekdays(t *testing.T) {
	task := validTask()
	task.Recurrence = Recurrence{Pattern: RecurrenceCustom}
	assert.ErrorIs(t, task.Validate(), ErrInvalidRecurrence)

	task.Recurrence = Recurrence{Pattern: RecurrenceCustom, Weekdays: []time.Weekday{time.Monday}}
	assert.NoError(t, task.Validate())
}

func TestValidate_UnknownPattern(t *testing.T) {
	task := validTask()
	task.Recurrence = Recurrence{Pattern: "fortnightly"}
	assert.ErrorIs(t, task.Validate(), ErrInvalidRecurrence)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("10/03/2025")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseDeadline(t *testing.T) {
	d, err := ParseDeadline("18:30")
	require.NoError(t, err)
	assert.True(t, d.Enabled)
	assert.Equal(t, 18, d.Hour)
	assert.Equal(t, 30, d.Minute)
	assert.Equal(t, "18:30", d.String())

	_, err = ParseDeadline("6pm")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDateOf_TruncatesToUTCDay(t *testing.T) {
	instant := time.Date(2025, 3, 10, 23, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), DateOf(instant))
}

func TestStreakRule_Normalized(t *testing.T) {
	assert.Equal(t, StreakRule{MinDailyTasks: 3, ThresholdPercent: 80}, StreakRule{}.Normalized())
	assert.Equal(t, 100, StreakRule{MinDailyTasks: 1, ThresholdPercent: 250}.Normalized().ThresholdPercent)
	assert.Equal(t, StreakRule{MinDailyTasks: 5, ThresholdPercent: 60}, StreakRule{MinDailyTasks: 5, ThresholdPercent: 60}.Normalized())
}
