package dashboard

import "github.com/checkdeck-io/checkdeck/pkg/core"

// Summary is the payload of GET /api/dashboard and the signal set pushed
// over /updates.
type Summary struct {
	TotalSuites      int                      `json:"total_suites"`
	ActiveSuites     int                      `json:"active_suites"`
	TotalItems       int                      `json:"total_items"`
	RunningExecutions int                     `json:"running_executions"`
	RecentExecutions []*core.ExecutionDetails `json:"recent_executions"`
	ActiveExecutions []*core.ExecutionDetails `json:"active_executions"`
	RecentSuites     []*core.SuiteSummary     `json:"recent_suites"`
}
