package core

import (
	"sort"
	"time"
)

// TrendPoint is one calendar-date bucket of the pass/fail trend.
type TrendPoint struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
}

// DailyTrend buckets executions by the calendar date of StartedAt in the
// given location and sums their denormalized passed/failed counters (it
// does not recount individual results). The caller is responsible for any
// time-window pre-filter, e.g. the last 30 days. Output is sorted
// ascending by date.
func DailyTrend(executions []*Execution, loc *time.Location) []TrendPoint {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[string]*TrendPoint)
	for _, ex := range executions {
		date := ex.StartedAt.In(loc).Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &TrendPoint{Date: date}
			buckets[date] = b
		}
		b.Passed += ex.PassedItems
		b.Failed += ex.FailedItems
	}

	trend := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		trend = append(trend, *b)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}

// maxFailedItems caps the most-failed ranking.
const maxFailedItems = 10

// FailedItemCount is one entry of the most-failed-items ranking.
type FailedItemCount struct {
	Item      *Item `json:"item"`
	FailCount int   `json:"fail_count"`
}

// MostFailedItems counts occurrences per distinct checklist item across
// the given failed results (the caller pre-filters to status failed),
// ranks descending by count and truncates to the top 10. Ties keep the
// first-occurrence order of the input.
func MostFailedItems(results []*ResultDetails) []FailedItemCount {
	counts := make(map[string]int, len(results))
	order := make([]string, 0, len(results))
	items := make(map[string]*Item, len(results))

	for _, r := range results {
		id := r.ChecklistItemID
		if _, seen := counts[id]; !seen {
			order = append(order, id)
			items[id] = r.Item
		}
		counts[id]++
	}

	ranked := make([]FailedItemCount, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, FailedItemCount{Item: items[id], FailCount: counts[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].FailCount > ranked[j].FailCount })

	if len(ranked) > maxFailedItems {
		ranked = ranked[:maxFailedItems]
	}
	return ranked
}
