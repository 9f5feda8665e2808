package analytics

import "github.com/checkdeck-io/checkdeck/pkg/core"

// Overview is the payload of GET /api/analytics.
type Overview struct {
	TotalSuites         int                       `json:"total_suites"`
	TotalItems          int                       `json:"total_items"`
	TotalExecutions     int                       `json:"total_executions"`
	CompletedExecutions int                       `json:"completed_executions"`
	RecentExecutions    []*core.ExecutionDetails  `json:"recent_executions"`
	DailyTrend          []core.TrendPoint         `json:"daily_trend"`
	MostFailedItems     []core.FailedItemCount    `json:"most_failed_items"`
}
