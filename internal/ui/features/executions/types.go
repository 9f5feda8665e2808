package executions

import "github.com/checkdeck-io/checkdeck/pkg/core"

// startRequest is the payload for POST /api/suites/{id}/executions.
// Name is optional; the store generates one when empty.
type startRequest struct {
	Name string `json:"name"`
}

// executionResponse decorates an execution with its derived stats.
type executionResponse struct {
	*core.ExecutionDetails
	Stats core.ExecutionStats `json:"stats"`
}
