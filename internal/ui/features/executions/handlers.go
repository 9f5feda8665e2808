// Package executions provides test execution handlers for the UI.
package executions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// Handlers provides HTTP handlers for the executions feature.
type Handlers struct {
	store    core.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: store, notifier: notify}
}

// Start begins a new execution of a suite, snapshotting the current item
// count.
func (h *Handlers) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !common.Decode(w, r, &req) {
		return
	}

	suiteID := chi.URLParam(r, "id")
	if _, err := h.store.GetSuite(r.Context(), suiteID); err != nil {
		common.Error(w, err)
		return
	}

	ex, err := h.store.StartExecution(r.Context(), suiteID, req.Name)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, executionResponse{
		ExecutionDetails: ex,
		Stats:            core.ComputeStats(&ex.Execution, ex.Results),
	})
}

// List returns all executions, newest first.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListExecutions(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}
	if list == nil {
		list = []*core.ExecutionDetails{}
	}
	common.JSON(w, http.StatusOK, list)
}

// ListBySuite returns the executions of one suite, newest first.
func (h *Handlers) ListBySuite(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListExecutionsBySuite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.Error(w, err)
		return
	}
	if list == nil {
		list = []*core.ExecutionDetails{}
	}
	common.JSON(w, http.StatusOK, list)
}

// Get returns one execution with its suite, results and derived stats.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	ex, err := h.store.GetExecution(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, executionResponse{
		ExecutionDetails: ex,
		Stats:            core.ComputeStats(&ex.Execution, ex.Results),
	})
}

// RecordResult records one tested item and returns the execution with
// its recomputed counters.
func (h *Handlers) RecordResult(w http.ResponseWriter, r *http.Request) {
	var req core.NewResult
	if !common.Decode(w, r, &req) {
		return
	}
	if req.ChecklistItemID == "" {
		common.BadRequest(w, "checklist_item_id is required")
		return
	}
	switch req.Status {
	case core.ResultStatusPassed, core.ResultStatusFailed,
		core.ResultStatusBlocked, core.ResultStatusSkipped:
	default:
		common.BadRequest(w, "invalid status")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.RecordResult(r.Context(), id, req); err != nil {
		common.Error(w, err)
		return
	}

	ex, err := h.store.GetExecution(r.Context(), id)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, executionResponse{
		ExecutionDetails: ex,
		Stats:            core.ComputeStats(&ex.Execution, ex.Results),
	})
}

// Complete marks an execution completed and stamps the completion time.
func (h *Handlers) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.CompleteExecution(r.Context(), id); err != nil {
		common.Error(w, err)
		return
	}

	ex, err := h.store.GetExecution(r.Context(), id)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, executionResponse{
		ExecutionDetails: ex,
		Stats:            core.ComputeStats(&ex.Execution, ex.Results),
	})
}
