package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUpdate_ScheduleChangeRollsBackAsOneUnit(t *testing.T) {
	database := testutil.NewTestDB(t)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	recordRepo := repository.NewSQLiteOccurrenceRecordRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	task := testutil.NewTestTask("habit", day(2025, 3, 1),
		testutil.WithRecurrence(domain.RecurrenceDaily),
		testutil.WithTimer(1500))
	require.NoError(t, taskRepo.Create(ctx, task))
	require.NoError(t, recordRepo.Upsert(ctx, testutil.NewTestRecord(task.ID, day(2025, 3, 2),
		testutil.WithTimerAccum(600))))

	// A schedule change runs two writes in one transaction: the
	// uncompleted-fact sweep, then the task row update. Failing the
	// second must also undo the first.
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom}
	svc := NewTaskService(taskRepo, recordRepo, categoryRepo, uow)

	edited := *task
	edited.Title = "habit v2"
	edited.Recurrence.Pattern = domain.RecurrenceCustom
	edited.Recurrence.Weekdays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	err := svc.Update(ctx, &edited)
	require.ErrorIs(t, err, boom)

	kept, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "habit", kept.Title)
	assert.Equal(t, domain.RecurrenceDaily, kept.Recurrence.Pattern)

	rec, err := recordRepo.Get(ctx, task.ID, day(2025, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, 600, rec.TimerAccumSec)
}

func TestOccurrenceComplete_FailedUpsertLeavesNoRecord(t *testing.T) {
	database := testutil.NewTestDB(t)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	recordRepo := repository.NewSQLiteOccurrenceRecordRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	task := testutil.NewTestTask("report", day(2025, 3, 5))
	require.NoError(t, taskRepo.Create(ctx, task))

	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: boom}
	svc := NewOccurrenceService(taskRepo, recordRepo, categoryRepo, uow)

	_, err := svc.Complete(ctx, task.ID, day(2025, 3, 5), at(2025, 3, 5, 12, 0))
	require.ErrorIs(t, err, boom)

	_, err = recordRepo.Get(ctx, task.ID, day(2025, 3, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
