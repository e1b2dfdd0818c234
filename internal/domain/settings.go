package domain

import "time"

const (
	DefaultMinDailyTasks    = 3
	DefaultThresholdPercent = 80
)

// StreakRule configures day qualification: a day qualifies when at least
// MinDailyTasks occurrences are scheduled and the completion ratio reaches
// ThresholdPercent.
type StreakRule struct {
	MinDailyTasks    int
	ThresholdPercent int
}

// Normalized clamps the rule to its valid domain (MinDailyTasks >= 1,
// ThresholdPercent in [1,100]), substituting defaults for zero values.
func (r StreakRule) Normalized() StreakRule {
	out := r
	if out.MinDailyTasks < 1 {
		out.MinDailyTasks = DefaultMinDailyTasks
	}
	if out.ThresholdPercent < 1 {
		out.ThresholdPercent = DefaultThresholdPercent
	}
	if out.ThresholdPercent > 100 {
		out.ThresholdPercent = 100
	}
	return out
}

// Settings is the process-wide per-user configuration. The streak rule is
// read at evaluation time, never cached past a single evaluation.
type Settings struct {
	Streak    StreakRule
	UpdatedAt time.Time
}

func DefaultSettings() Settings {
	return Settings{
		Streak: StreakRule{
			MinDailyTasks:    DefaultMinDailyTasks,
			ThresholdPercent: DefaultThresholdPercent,
		},
	}
}
