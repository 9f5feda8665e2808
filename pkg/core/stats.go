package core

// ExecutionStats is the per-execution arithmetic the views display.
// Skipped results count toward Tested (and the pass rate denominator)
// even though the stored execution counters ignore them.
type ExecutionStats struct {
	Total    int     `json:"total"`
	Tested   int     `json:"tested"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Blocked  int     `json:"blocked"`
	Skipped  int     `json:"skipped"`
	PassRate float64 `json:"pass_rate"`
}

// ComputeStats derives display stats from an execution's recorded
// results. Duplicate results for the same item count once each, matching
// the stored counters.
func ComputeStats(ex *Execution, results []*ResultDetails) ExecutionStats {
	stats := ExecutionStats{Total: ex.TotalItems}

	for _, r := range results {
		switch r.Status {
		case ResultStatusPassed:
			stats.Passed++
		case ResultStatusFailed:
			stats.Failed++
		case ResultStatusBlocked:
			stats.Blocked++
		case ResultStatusSkipped:
			stats.Skipped++
		}
	}

	stats.Tested = stats.Passed + stats.Failed + stats.Blocked + stats.Skipped
	if stats.Tested > 0 {
		stats.PassRate = float64(stats.Passed) / float64(stats.Tested) * 100
	}
	return stats
}
