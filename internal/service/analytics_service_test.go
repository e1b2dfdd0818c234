package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsAggregate_WidensToEnclosingWeek(t *testing.T) {
	tasks, categories, records, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewAnalyticsService(tasks, records, categories)

	// Wednesday March 5 sits inside the week of Monday March 3.
	task := testutil.NewTestTask("report", day(2025, 3, 5))
	require.NoError(t, tasks.Create(ctx, task))
	completeOn(t, ctx, records, task.ID, day(2025, 3, 5))

	payload, err := svc.Aggregate(ctx, app.AnalyticsRequest{
		GroupBy: domain.GroupByWeek,
		Ref:     day(2025, 3, 5),
		Now:     at(2025, 3, 7, 12, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 3), payload.Start)
	assert.Equal(t, day(2025, 3, 9), payload.End)
	assert.Equal(t, 1, payload.Report.Stats.Total)
	assert.Equal(t, 1, payload.Report.Stats.Completed)
	assert.Equal(t, 100, payload.Report.Stats.Productivity)
	assert.Len(t, payload.Report.Trend, 7)
}

func TestAnalyticsAggregate_CategoryShares(t *testing.T) {
	tasks, categories, records, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewAnalyticsService(tasks, records, categories)

	study := testutil.NewTestCategory("Study")
	work := testutil.NewTestCategory("Work")
	require.NoError(t, categories.Create(ctx, study))
	require.NoError(t, categories.Create(ctx, work))

	for i := 0; i < 3; i++ {
		task := testutil.NewTestTask("read", day(2025, 3, 10+i),
			testutil.WithCategory(study.ID))
		require.NoError(t, tasks.Create(ctx, task))
	}
	task := testutil.NewTestTask("meeting", day(2025, 3, 12),
		testutil.WithCategory(work.ID))
	require.NoError(t, tasks.Create(ctx, task))

	payload, err := svc.Aggregate(ctx, app.AnalyticsRequest{
		GroupBy: domain.GroupByMonth,
		Ref:     day(2025, 3, 15),
		Now:     at(2025, 3, 15, 12, 0),
	})
	require.NoError(t, err)
	require.Len(t, payload.Report.Categories, 2)
	assert.Equal(t, "Study", payload.Report.Categories[0].Name)
	assert.Equal(t, 75, payload.Report.Categories[0].Percentage)
	assert.Equal(t, "Work", payload.Report.Categories[1].Name)
	assert.Equal(t, 25, payload.Report.Categories[1].Percentage)
}

func TestAnalyticsAggregate_UnknownGrouping(t *testing.T) {
	tasks, categories, records, _, _ := setupRepos(t)
	svc := NewAnalyticsService(tasks, records, categories)

	_, err := svc.Aggregate(context.Background(), app.AnalyticsRequest{
		GroupBy: domain.GroupBy("quarter"),
		Ref:     day(2025, 3, 5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWeeklyReview_CountsAndFocusTime(t *testing.T) {
	tasks, categories, records, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewAnalyticsService(tasks, records, categories)

	// Week of Monday March 3. Two tasks created in-week, one before.
	inWeek1 := testutil.NewTestTask("write", day(2025, 3, 4),
		testutil.WithCreatedAt(day(2025, 3, 3).Add(9*time.Hour)))
	inWeek2 := testutil.NewTestTask("review", day(2025, 3, 6),
		testutil.WithCreatedAt(day(2025, 3, 5).Add(9*time.Hour)),
		testutil.WithDeadline(10, 0))
	earlier := testutil.NewTestTask("plan", day(2025, 3, 5),
		testutil.WithCreatedAt(day(2025, 2, 20).Add(9*time.Hour)))
	for _, task := range []*domain.Task{inWeek1, inWeek2, earlier} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	completeOn(t, ctx, records, inWeek1.ID, day(2025, 3, 4))
	completeOn(t, ctx, records, earlier.ID, day(2025, 3, 5))
	// inWeek2 misses its 10:00 deadline and shows as overdue.

	require.NoError(t, records.Upsert(ctx, testutil.NewTestRecord(inWeek1.ID, day(2025, 3, 4),
		testutil.WithCompletedAt(day(2025, 3, 4).Add(12*time.Hour)),
		testutil.WithTimerAccum(1800))))

	review, err := svc.WeeklyReview(ctx, app.WeeklyReviewRequest{
		Date: day(2025, 3, 5),
		Now:  at(2025, 3, 20, 12, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, review.Created)
	assert.Equal(t, 2, review.Completed)
	assert.Equal(t, 1, review.Overdue)
	assert.Equal(t, 100, review.CompletionRate)
	assert.Equal(t, 30, review.TimerMinutes)
	assert.Equal(t, "Tuesday", review.MostProductiveDay)
}

func TestWeeklyReview_PastWeekStableUnderLaterClock(t *testing.T) {
	tasks, categories, records, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewAnalyticsService(tasks, records, categories)

	// Completed on the week's last day; judged at week close it is
	// completed, and a much later re-run reports the same thing.
	task := testutil.NewTestTask("ship", day(2025, 3, 9))
	require.NoError(t, tasks.Create(ctx, task))
	completeOn(t, ctx, records, task.ID, day(2025, 3, 9))

	first, err := svc.WeeklyReview(ctx, app.WeeklyReviewRequest{
		Date: day(2025, 3, 5),
		Now:  at(2025, 3, 10, 8, 0),
	})
	require.NoError(t, err)
	later, err := svc.WeeklyReview(ctx, app.WeeklyReviewRequest{
		Date: day(2025, 3, 5),
		Now:  at(2025, 6, 1, 8, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, first.Completed, later.Completed)
	assert.Equal(t, first.Overdue, later.Overdue)
	assert.Equal(t, first.CompletionRate, later.CompletionRate)
}
