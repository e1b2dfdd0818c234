package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDailyTasks(t *testing.T, ctx context.Context, tasks repository.TaskRepo, anchor time.Time, n int) []*domain.Task {
	t.Helper()
	out := make([]*domain.Task, 0, n)
	for i := 0; i < n; i++ {
		task := testutil.NewTestTask("habit", anchor,
			testutil.WithRecurrence(domain.RecurrenceDaily))
		require.NoError(t, tasks.Create(ctx, task))
		out = append(out, task)
	}
	return out
}

func completeOn(t *testing.T, ctx context.Context, records repository.OccurrenceRecordRepo, taskID string, d time.Time) {
	t.Helper()
	require.NoError(t, records.Upsert(ctx, testutil.NewTestRecord(taskID, d,
		testutil.WithCompletedAt(d.Add(12*time.Hour)))))
}

func TestStreakSummary_QualificationUnderRule(t *testing.T) {
	tasks, _, records, settings, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewStreakService(tasks, records, settings)

	anchor := day(2025, 3, 8)
	seeded := seedDailyTasks(t, ctx, tasks, anchor, 5)

	// March 8: 4 of 5 completed (80%, qualifies under defaults).
	for _, task := range seeded[:4] {
		completeOn(t, ctx, records, task.ID, day(2025, 3, 8))
	}
	// March 9: 3 of 5 completed (60%, fails).
	for _, task := range seeded[:3] {
		completeOn(t, ctx, records, task.ID, day(2025, 3, 9))
	}

	summary, err := svc.Summary(ctx, app.StreakSummaryRequest{
		Start: day(2025, 3, 8),
		End:   day(2025, 3, 9),
		Now:   at(2025, 3, 9, 23, 0),
	})
	require.NoError(t, err)
	require.Len(t, summary.Days, 2)
	assert.True(t, summary.Days[0].Qualified)
	assert.False(t, summary.Days[1].Qualified)
	assert.Equal(t, 80.0, summary.Days[0].Ratio)
}

func TestStreakSummary_BelowMinimumNeverQualifies(t *testing.T) {
	tasks, _, records, settings, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewStreakService(tasks, records, settings)

	anchor := day(2025, 3, 8)
	seeded := seedDailyTasks(t, ctx, tasks, anchor, 2)
	for _, task := range seeded {
		completeOn(t, ctx, records, task.ID, day(2025, 3, 8))
	}

	summary, err := svc.Summary(ctx, app.StreakSummaryRequest{
		Start: day(2025, 3, 8),
		End:   day(2025, 3, 8),
		Now:   at(2025, 3, 8, 23, 0),
	})
	require.NoError(t, err)
	require.Len(t, summary.Days, 1)
	// Perfect ratio, but only 2 tasks scheduled against the 3-task minimum.
	assert.Equal(t, 100.0, summary.Days[0].Ratio)
	assert.False(t, summary.Days[0].Qualified)
}

func TestStreakSummary_CurrentStreakReachesBeyondWindow(t *testing.T) {
	tasks, _, records, settings, _ := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, settings.Upsert(ctx, &domain.Settings{
		Streak: domain.StreakRule{MinDailyTasks: 1, ThresholdPercent: 80},
	}))
	svc := NewStreakService(tasks, records, settings)

	anchor := day(2025, 3, 1)
	task := testutil.NewTestTask("habit", anchor,
		testutil.WithRecurrence(domain.RecurrenceDaily))
	require.NoError(t, tasks.Create(ctx, task))

	// Qualifying days March 6 through 9; the summary window shows only
	// March 9 but the streak counts the full run.
	for d := day(2025, 3, 6); !d.After(day(2025, 3, 9)); d = d.AddDate(0, 0, 1) {
		completeOn(t, ctx, records, task.ID, d)
	}

	summary, err := svc.Summary(ctx, app.StreakSummaryRequest{
		Start: day(2025, 3, 9),
		End:   day(2025, 3, 9),
		Now:   at(2025, 3, 9, 23, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.CurrentStreak)
	assert.True(t, summary.TodayQualified)
}

func TestStreakSummary_UnqualifiedTodayDoesNotBreak(t *testing.T) {
	tasks, _, records, settings, _ := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, settings.Upsert(ctx, &domain.Settings{
		Streak: domain.StreakRule{MinDailyTasks: 1, ThresholdPercent: 80},
	}))
	svc := NewStreakService(tasks, records, settings)

	anchor := day(2025, 3, 1)
	task := testutil.NewTestTask("habit", anchor,
		testutil.WithRecurrence(domain.RecurrenceDaily))
	require.NoError(t, tasks.Create(ctx, task))

	completeOn(t, ctx, records, task.ID, day(2025, 3, 8))
	completeOn(t, ctx, records, task.ID, day(2025, 3, 9))
	// March 10 (today) has nothing completed yet.

	today, err := svc.Today(ctx, at(2025, 3, 10, 9, 0))
	require.NoError(t, err)
	assert.False(t, today.Qualified)
	assert.Equal(t, 2, today.CurrentStreak)
	assert.Equal(t, 1, today.Scheduled)
	assert.Equal(t, 0, today.Completed)
}

func TestStreakSummary_InvertedWindowRejected(t *testing.T) {
	tasks, _, records, settings, _ := setupRepos(t)
	svc := NewStreakService(tasks, records, settings)

	_, err := svc.Summary(context.Background(), app.StreakSummaryRequest{
		Start: day(2025, 3, 10),
		End:   day(2025, 3, 1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
