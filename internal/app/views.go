package app

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/insight"
)

// OccurrenceView is one resolved occurrence of a task: the definition's
// display fields plus the per-day status and timer state.
type OccurrenceView struct {
	TaskID        string
	Date          time.Time
	Title         string
	Description   string
	Priority      domain.Priority
	Category      string
	Status        domain.OccurrenceStatus
	IsRecurring   bool
	HasDeadline   bool
	DeadlineTime  string
	HasTimer      bool
	TimerDuration int
	TimerRemain   int
	TimerRunning  bool
	CompletedAt   *time.Time
}

// ListOccurrencesRequest selects occurrences in [Start, End], optionally
// filtered by resolved status. Now overrides the clock, mainly for tests.
type ListOccurrencesRequest struct {
	Start  time.Time
	End    time.Time
	Status string
	Now    *time.Time
}

type StreakSummaryRequest struct {
	Start time.Time
	End   time.Time
	Now   *time.Time
}

type StreakToday struct {
	Date          time.Time
	Scheduled     int
	Completed     int
	Ratio         float64
	Qualified     bool
	CurrentStreak int
}

type AnalyticsRequest struct {
	GroupBy domain.GroupBy
	// Ref is any date inside the requested period; the service widens it
	// to the enclosing week, month, or year.
	Ref time.Time
	Now *time.Time
}

type AnalyticsPayload struct {
	GroupBy domain.GroupBy
	Start   time.Time
	End     time.Time
	Report  insight.Report
}

type WeeklyReviewRequest struct {
	// Date is any day of the week under review (Monday-based weeks).
	Date time.Time
	Now  *time.Time
}
