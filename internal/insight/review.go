package insight

import (
	"sort"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// InsightKind labels a review insight line.
type InsightKind string

const (
	InsightStrength InsightKind = "strength"
	InsightWarning  InsightKind = "warning"
	InsightHint     InsightKind = "hint"
)

type ReviewInsight struct {
	Kind InsightKind
	Text string
}

// ReviewInput is the material for one Monday-based week.
type ReviewInput struct {
	WeekStart    time.Time
	WeekEnd      time.Time
	Occurrences  []Resolved
	TasksCreated int
	TimerSec     int
}

// WeeklyReview summarizes one week of occurrence history.
type WeeklyReview struct {
	RangeLabel        string
	Created           int
	Completed         int
	Overdue           int
	CompletionRate    int
	TimerMinutes      int
	TopCategory       string
	MostProductiveDay string
	Insights          []ReviewInsight
	NextWeekFocus     string
}

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Review computes the weekly review payload from resolved occurrences.
func Review(in ReviewInput) WeeklyReview {
	var completed, overdue int
	for _, o := range in.Occurrences {
		switch o.Status {
		case domain.OccurrenceCompleted:
			completed++
		case domain.OccurrenceOverdue:
			overdue++
		}
	}

	created := in.TasksCreated
	rate := completionRate(completed, created)
	top := topCategory(in.Occurrences)
	bestDay := mostProductiveDay(in.Occurrences)

	return WeeklyReview{
		RangeLabel:        in.WeekStart.Format(time.DateOnly) + " - " + in.WeekEnd.Format(time.DateOnly),
		Created:           created,
		Completed:         completed,
		Overdue:           overdue,
		CompletionRate:    rate,
		TimerMinutes:      in.TimerSec / 60,
		TopCategory:       top,
		MostProductiveDay: bestDay,
		Insights:          buildInsights(created, completed, overdue, rate, in.TimerSec/60, bestDay),
		NextWeekFocus:     nextWeekFocus(created, completed, overdue, rate),
	}
}

func completionRate(completed, created int) int {
	if created < 1 {
		created = 1
	}
	return roundPct(completed, created)
}

// topCategory ranks categories by completed occurrences, falling back to
// scheduled occurrences when nothing was completed. Ties go to the
// lexicographically smaller name.
func topCategory(occs []Resolved) string {
	completedCounts := make(map[string]int)
	totalCounts := make(map[string]int)
	for _, o := range occs {
		totalCounts[o.Category]++
		if o.Status == domain.OccurrenceCompleted {
			completedCounts[o.Category]++
		}
	}
	if len(completedCounts) > 0 {
		return maxByCount(completedCounts)
	}
	return maxByCount(totalCounts)
}

func maxByCount(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// mostProductiveDay picks the weekday with the most completions, keyed by
// the completion instant when known and the occurrence date otherwise.
// Monday-based indices; ties go to the earlier weekday.
func mostProductiveDay(occs []Resolved) string {
	counts := make(map[int]int)
	for _, o := range occs {
		if o.Status != domain.OccurrenceCompleted {
			continue
		}
		ref := o.Date
		if o.CompletedAt != nil {
			ref = o.CompletedAt.UTC()
		}
		counts[mondayIndex(ref)]++
	}
	if len(counts) == 0 {
		return ""
	}
	best, bestCount := 0, -1
	for idx := 0; idx < 7; idx++ {
		if counts[idx] > bestCount {
			best, bestCount = idx, counts[idx]
		}
	}
	return weekdayNames[best]
}

func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func buildInsights(created, completed, overdue, rate, timerMinutes int, bestDay string) []ReviewInsight {
	if created == 0 && completed == 0 && overdue == 0 {
		return []ReviewInsight{{Kind: InsightHint, Text: "No data yet for this week. Add a few tasks to start building your review."}}
	}

	var insights []ReviewInsight
	if rate < 40 {
		insights = append(insights, ReviewInsight{Kind: InsightWarning, Text: "Completion is below 40%. Consider reducing task load for each day."})
	}
	if overdue > 0 && overdue >= completed {
		insights = append(insights, ReviewInsight{Kind: InsightWarning, Text: "Overdue tasks are outweighing completions. Re-prioritize deadlines this week."})
	}
	if bestDay != "" {
		insights = append(insights, ReviewInsight{Kind: InsightStrength, Text: bestDay + " was your strongest completion day."})
	}
	if timerMinutes < 30 {
		insights = append(insights, ReviewInsight{Kind: InsightHint, Text: "Tracked focus time is low. Try batching tasks into longer sessions."})
	}
	return insights
}

func nextWeekFocus(created, completed, overdue, rate int) string {
	if created == 0 && completed == 0 && overdue == 0 {
		return "Plan deep work on your most productive day and keep consistency."
	}
	if rate < 40 {
		return "Reduce daily task load and focus on fewer priorities."
	}
	if overdue >= completed {
		return "Adjust deadlines and break tasks into smaller steps."
	}
	return "Plan deep work on your most productive day and keep consistency."
}
