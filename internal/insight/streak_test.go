package insight

import (
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var defaultRule = domain.StreakRule{MinDailyTasks: 3, ThresholdPercent: 80}

func TestQualifyDay_BelowMinimumNeverQualifies(t *testing.T) {
	// 2/2 is a perfect ratio but under the 3-task minimum.
	s := QualifyDay(defaultRule, day(2025, 3, 10), 2, 2)
	assert.Equal(t, 100.0, s.Ratio)
	assert.False(t, s.Qualified)
}

func TestQualifyDay_ThresholdBoundary(t *testing.T) {
	// 4/5 = 80% exactly meets the threshold.
	assert.True(t, QualifyDay(defaultRule, day(2025, 3, 10), 5, 4).Qualified)
	// 3/5 = 60% does not.
	assert.False(t, QualifyDay(defaultRule, day(2025, 3, 10), 5, 3).Qualified)
}

func TestQualifyDay_EmptyDay(t *testing.T) {
	s := QualifyDay(defaultRule, day(2025, 3, 10), 0, 0)
	assert.Equal(t, 0.0, s.Ratio)
	assert.False(t, s.Qualified)
}

func TestQualifyDay_RatioRoundedToTwoDecimals(t *testing.T) {
	// 2/3 = 66.666... rounds to 66.67.
	s := QualifyDay(defaultRule, day(2025, 3, 10), 3, 2)
	assert.Equal(t, 66.67, s.Ratio)
}

func TestSummarize_CurrentStreakCountsBackFromToday(t *testing.T) {
	today := day(2025, 3, 10)
	days := []DayCount{
		{Date: day(2025, 3, 7), Scheduled: 3, Completed: 3},
		{Date: day(2025, 3, 8), Scheduled: 4, Completed: 4},
		{Date: day(2025, 3, 9), Scheduled: 3, Completed: 3},
		{Date: today, Scheduled: 3, Completed: 1},
	}

	s := Summarize(defaultRule, days, today)
	// Today has not qualified yet; the streak still counts the three
	// preceding days without breaking.
	assert.Equal(t, 3, s.CurrentStreak)
	assert.False(t, s.TodayQualified)
}

func TestSummarize_TodayQualifiedExtendsStreak(t *testing.T) {
	today := day(2025, 3, 10)
	days := []DayCount{
		{Date: day(2025, 3, 9), Scheduled: 3, Completed: 3},
		{Date: today, Scheduled: 3, Completed: 3},
	}

	s := Summarize(defaultRule, days, today)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.True(t, s.TodayQualified)
}

func TestSummarize_GapBreaksCurrentStreak(t *testing.T) {
	today := day(2025, 3, 10)
	days := []DayCount{
		{Date: day(2025, 3, 7), Scheduled: 3, Completed: 3},
		// March 8 missing entirely.
		{Date: day(2025, 3, 9), Scheduled: 3, Completed: 3},
	}

	s := Summarize(defaultRule, days, today)
	assert.Equal(t, 1, s.CurrentStreak)
}

func TestSummarize_BestStreakIsLongestRun(t *testing.T) {
	today := day(2025, 3, 10)
	days := []DayCount{
		{Date: day(2025, 3, 1), Scheduled: 3, Completed: 3},
		{Date: day(2025, 3, 2), Scheduled: 3, Completed: 3},
		{Date: day(2025, 3, 3), Scheduled: 3, Completed: 3},
		{Date: day(2025, 3, 4), Scheduled: 3, Completed: 0},
		{Date: day(2025, 3, 5), Scheduled: 3, Completed: 3},
	}

	s := Summarize(defaultRule, days, today)
	assert.Equal(t, 3, s.BestStreak)
	assert.Equal(t, 0, s.CurrentStreak)
}

func TestSummarize_NormalizesRule(t *testing.T) {
	today := day(2025, 3, 10)
	s := Summarize(domain.StreakRule{MinDailyTasks: 0, ThresholdPercent: 150}, nil, today)
	assert.Equal(t, domain.DefaultMinDailyTasks, s.Rule.MinDailyTasks)
	assert.Equal(t, 100, s.Rule.ThresholdPercent)
}

func TestSummarize_DaysSortedByDate(t *testing.T) {
	today := day(2025, 3, 10)
	days := []DayCount{
		{Date: day(2025, 3, 9), Scheduled: 1, Completed: 0},
		{Date: day(2025, 3, 7), Scheduled: 1, Completed: 0},
		{Date: day(2025, 3, 8), Scheduled: 1, Completed: 0},
	}

	s := Summarize(defaultRule, days, today)
	assert.Equal(t, day(2025, 3, 7), s.Days[0].Date)
	assert.Equal(t, day(2025, 3, 9), s.Days[2].Date)
}
