package insight

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Resolved is one occurrence with its status already computed, the input
// unit for aggregation.
type Resolved struct {
	TaskID      string
	Category    string
	Date        time.Time
	Status      domain.OccurrenceStatus
	CompletedAt *time.Time
	TimerSec    int
}

// Stats are totals over a period. Productivity is completed/total as a
// rounded percentage, 0 when the period is empty.
type Stats struct {
	Total        int
	Completed    int
	Overdue      int
	Productivity int
}

// TrendPoint is one sub-period of the trend series.
type TrendPoint struct {
	Label string
	Stats Stats
}

// CategoryStat is one category's share of the period. Percentage is the
// category's total relative to the grand total.
type CategoryStat struct {
	Name       string
	Total      int
	Completed  int
	Percentage int
}

// PeriodRate ranks a sub-period by completion rate.
type PeriodRate struct {
	Label string
	Rate  int
}

// Report is the aggregate payload for a week/month/year view.
type Report struct {
	RangeLabel        string
	Stats             Stats
	Trend             []TrendPoint
	Categories        []CategoryStat
	ProductivePeriods []PeriodRate
	// MostProductive is the label of the period with the highest rate,
	// ties broken by earliest label. Empty when no period has any
	// occurrences.
	MostProductive string
}

// Aggregate computes totals, the trend series, category shares, and the
// productive-period ranking for occurrences in [rangeStart, rangeEnd].
// The trend and the ranking share one granularity per view: one point per
// day for week and month views, one per month for the year view.
func Aggregate(occs []Resolved, groupBy domain.GroupBy, rangeStart, rangeEnd time.Time) Report {
	rangeStart = domain.DateOf(rangeStart)
	rangeEnd = domain.DateOf(rangeEnd)

	report := Report{
		RangeLabel: rangeStart.Format(time.DateOnly) + " - " + rangeEnd.Format(time.DateOnly),
		Stats:      statsOf(occs),
	}

	labels := periodLabels(groupBy, rangeStart, rangeEnd)
	buckets := make(map[string][]Resolved, len(labels))
	for _, o := range occs {
		key := periodLabel(groupBy, o.Date)
		buckets[key] = append(buckets[key], o)
	}

	bestLabel, bestRate := "", -1
	for _, label := range labels {
		stats := statsOf(buckets[label])
		report.Trend = append(report.Trend, TrendPoint{Label: label, Stats: stats})
		report.ProductivePeriods = append(report.ProductivePeriods, PeriodRate{Label: label, Rate: stats.Productivity})
		if stats.Total > 0 && stats.Productivity > bestRate {
			bestLabel, bestRate = label, stats.Productivity
		}
	}
	report.MostProductive = bestLabel

	report.Categories = categoryStats(occs, report.Stats.Total)
	return report
}

func statsOf(occs []Resolved) Stats {
	var s Stats
	for _, o := range occs {
		s.Total++
		switch o.Status {
		case domain.OccurrenceCompleted:
			s.Completed++
		case domain.OccurrenceOverdue:
			s.Overdue++
		}
	}
	s.Productivity = roundPct(s.Completed, s.Total)
	return s
}

func categoryStats(occs []Resolved, grandTotal int) []CategoryStat {
	byName := make(map[string]*CategoryStat)
	for _, o := range occs {
		stat, ok := byName[o.Category]
		if !ok {
			stat = &CategoryStat{Name: o.Category}
			byName[o.Category] = stat
		}
		stat.Total++
		if o.Status == domain.OccurrenceCompleted {
			stat.Completed++
		}
	}

	stats := make([]CategoryStat, 0, len(byName))
	for _, stat := range byName {
		stat.Percentage = roundPct(stat.Total, grandTotal)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// periodLabels enumerates every sub-period in range so empty sub-periods
// still appear as zero points in the trend.
func periodLabels(groupBy domain.GroupBy, start, end time.Time) []string {
	var labels []string
	if groupBy == domain.GroupByYear {
		cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !cursor.After(end) {
			labels = append(labels, cursor.Format("2006-01"))
			cursor = cursor.AddDate(0, 1, 0)
		}
		return labels
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		labels = append(labels, d.Format(time.DateOnly))
	}
	return labels
}

func periodLabel(groupBy domain.GroupBy, date time.Time) string {
	if groupBy == domain.GroupByYear {
		return date.Format("2006-01")
	}
	return date.Format(time.DateOnly)
}

func roundPct(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
