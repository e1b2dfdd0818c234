// Package insight derives streak and productivity summaries from resolved
// occurrence history. Like the occurrence package it is pure computation:
// callers supply counts and a clock, nothing is stored.
package insight

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// DayCount is the raw per-day input: how many occurrences were scheduled on
// a date and how many of them were completed.
type DayCount struct {
	Date      time.Time
	Scheduled int
	Completed int
}

// DaySummary is a qualified day: counts plus the completion ratio and the
// qualification verdict under the active rule.
type DaySummary struct {
	Date      time.Time
	Scheduled int
	Completed int
	Ratio     float64
	Qualified bool
}

// StreakSummary reports streak lengths over an inspected window.
//
// CurrentStreak is the trailing run of qualifying days ending at today.
// Today itself counts only once it already qualifies; a today still in
// progress that does not yet qualify neither extends nor breaks the run,
// so counting starts from yesterday.
type StreakSummary struct {
	CurrentStreak  int
	BestStreak     int
	TodayQualified bool
	Rule           domain.StreakRule
	Days           []DaySummary
}

// QualifyDay evaluates one day under the rule. A day with zero scheduled
// occurrences has ratio 0 and never qualifies; empty days break streaks
// like failing days do.
func QualifyDay(rule domain.StreakRule, date time.Time, scheduled, completed int) DaySummary {
	ratio := 0.0
	if scheduled > 0 {
		ratio = math.Round(float64(completed)/float64(scheduled)*100*100) / 100
	}
	return DaySummary{
		Date:      domain.DateOf(date),
		Scheduled: scheduled,
		Completed: completed,
		Ratio:     ratio,
		Qualified: scheduled >= rule.MinDailyTasks && ratio >= float64(rule.ThresholdPercent),
	}
}

// Summarize qualifies every day in the window and computes streak lengths.
// The rule is normalized before use; days may arrive in any order. Dates
// absent from the window are treated as non-qualifying, so the supplied
// window bounds how far back the current streak can reach.
func Summarize(rule domain.StreakRule, days []DayCount, today time.Time) StreakSummary {
	rule = rule.Normalized()
	today = domain.DateOf(today)

	summaries := make([]DaySummary, 0, len(days))
	qualified := make(map[time.Time]bool, len(days))
	for _, d := range days {
		s := QualifyDay(rule, d.Date, d.Scheduled, d.Completed)
		summaries = append(summaries, s)
		qualified[s.Date] = s.Qualified
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date.Before(summaries[j].Date)
	})

	return StreakSummary{
		CurrentStreak:  currentStreak(qualified, today),
		BestStreak:     bestStreak(summaries),
		TodayQualified: qualified[today],
		Rule:           rule,
		Days:           summaries,
	}
}

func currentStreak(qualified map[time.Time]bool, today time.Time) int {
	streak := 0
	cursor := today
	if qualified[cursor] {
		streak++
	}
	// Whether or not today qualified yet, continue counting from yesterday.
	cursor = cursor.AddDate(0, 0, -1)
	for qualified[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func bestStreak(days []DaySummary) int {
	best, run := 0, 0
	for _, d := range days {
		if d.Qualified {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
