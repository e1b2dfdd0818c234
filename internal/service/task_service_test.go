package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCreate_FillsDefaults(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	ctx := context.Background()

	catSvc := NewCategoryService(categories, uow)
	def, err := catSvc.EnsureDefault(ctx)
	require.NoError(t, err)

	svc := NewTaskService(tasks, records, categories, uow)
	task := &domain.Task{Title: "Read", ScheduledDate: day(2025, 3, 10)}
	require.NoError(t, svc.Create(ctx, task))

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, def.ID, task.CategoryID, "uncategorized tasks land in the default category")
	assert.False(t, task.CreatedAt.IsZero())
}

func TestTaskCreate_RejectsInvalid(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	svc := NewTaskService(tasks, records, categories, uow)

	err := svc.Create(context.Background(), &domain.Task{ScheduledDate: day(2025, 3, 10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.Create(context.Background(), &domain.Task{
		Title:         "bad recur",
		ScheduledDate: day(2025, 3, 10),
		Recurrence:    domain.Recurrence{Pattern: domain.RecurrenceCustom},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRecurrence)
}

func TestTaskUpdate_OverdueOneOffIsLocked(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(tasks, records, categories, uow)

	// Scheduled yesterday with no completion: resolved overdue by now.
	yesterday := domain.DateOf(time.Now().UTC()).AddDate(0, 0, -1)
	task := testutil.NewTestTask("missed", yesterday)
	require.NoError(t, tasks.Create(ctx, task))

	task.Title = "renamed"
	assert.ErrorIs(t, svc.Update(ctx, task), domain.ErrOccurrenceLocked)
	assert.ErrorIs(t, svc.Delete(ctx, task.ID), domain.ErrOccurrenceLocked)
}

func TestTaskUpdate_CompletedOneOffStaysEditable(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(tasks, records, categories, uow)

	yesterday := domain.DateOf(time.Now().UTC()).AddDate(0, 0, -1)
	task := testutil.NewTestTask("done", yesterday)
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, records.Upsert(ctx, testutil.NewTestRecord(task.ID, yesterday,
		testutil.WithCompletedAt(yesterday.Add(10*time.Hour)))))

	task.Title = "renamed"
	assert.NoError(t, svc.Update(ctx, task))
}

func TestTaskUpdate_RecurringStaysEditableWhenOverdue(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(tasks, records, categories, uow)

	longAgo := domain.DateOf(time.Now().UTC()).AddDate(0, 0, -30)
	task := testutil.NewTestTask("habit", longAgo,
		testutil.WithRecurrence(domain.RecurrenceDaily))
	require.NoError(t, tasks.Create(ctx, task))

	task.Title = "renamed habit"
	assert.NoError(t, svc.Update(ctx, task))
}

func TestTaskUpdate_ScheduleChangeDiscardsUncompletedFacts(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(tasks, records, categories, uow)

	anchor := domain.DateOf(time.Now().UTC())
	task := testutil.NewTestTask("habit", anchor,
		testutil.WithRecurrence(domain.RecurrenceDaily),
		testutil.WithTimer(1500))
	require.NoError(t, tasks.Create(ctx, task))

	completedAt := anchor.Add(9 * time.Hour)
	require.NoError(t, records.Upsert(ctx, testutil.NewTestRecord(task.ID, anchor,
		testutil.WithCompletedAt(completedAt))))
	require.NoError(t, records.Upsert(ctx, testutil.NewTestRecord(task.ID, anchor.AddDate(0, 0, 1),
		testutil.WithTimerAccum(600))))

	// Switch the shape: timer-only facts go, completions stay.
	task.Recurrence = domain.Recurrence{Pattern: domain.RecurrenceCustom, Weekdays: []time.Weekday{time.Monday}}
	require.NoError(t, svc.Update(ctx, task))

	kept, err := records.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.True(t, kept[0].Completed())
}

func TestTaskUpdate_DeadlineChangeDiscardsPendingFacts(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(tasks, records, categories, uow)

	anchor := domain.DateOf(time.Now().UTC())
	task := testutil.NewTestTask("habit", anchor,
		testutil.WithRecurrence(domain.RecurrenceDaily),
		testutil.WithTimer(1500))
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, records.Upsert(ctx, testutil.NewTestRecord(task.ID, anchor.AddDate(0, 0, 1),
		testutil.WithTimerAccum(600))))

	task.Deadline = domain.Deadline{Enabled: true, Hour: 18, Minute: 0}
	require.NoError(t, svc.Update(ctx, task))

	kept, err := records.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestTaskUpdate_NonScheduleEditKeepsFacts(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(tasks, records, categories, uow)

	anchor := domain.DateOf(time.Now().UTC())
	task := testutil.NewTestTask("habit", anchor,
		testutil.WithRecurrence(domain.RecurrenceDaily))
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, records.Upsert(ctx, testutil.NewTestRecord(task.ID, anchor.AddDate(0, 0, 1),
		testutil.WithTimerAccum(600))))

	task.Title = "renamed"
	require.NoError(t, svc.Update(ctx, task))

	kept, err := records.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestTaskDelete_RemovesHistory(t *testing.T) {
	tasks, categories, records, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(tasks, records, categories, uow)

	anchor := domain.DateOf(time.Now().UTC())
	task := testutil.NewTestTask("habit", anchor,
		testutil.WithRecurrence(domain.RecurrenceDaily))
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, records.Upsert(ctx, testutil.NewTestRecord(task.ID, anchor,
		testutil.WithCompletedAt(anchor.Add(8*time.Hour)))))

	require.NoError(t, svc.Delete(ctx, task.ID))

	_, err := tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	remaining, err := records.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
