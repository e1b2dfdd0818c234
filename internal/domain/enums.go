package domain

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
	RecurrenceCustom  RecurrencePattern = "custom"
)

type OccurrenceStatus string

const (
	OccurrencePending   OccurrenceStatus = "pending"
	OccurrenceCompleted OccurrenceStatus = "completed"
	OccurrenceOverdue   OccurrenceStatus = "overdue"
)

// ValidStatusFilters is the set of status strings accepted by listing filters.
var ValidStatusFilters = map[string]bool{
	"pending": true, "completed": true, "overdue": true,
}

type GroupBy string

const (
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
)
