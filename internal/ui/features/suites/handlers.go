// Package suites provides suite management handlers for the UI.
package suites

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// Handlers provides HTTP handlers for the suites feature.
type Handlers struct {
	store    core.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: store, notifier: notify}
}

// List returns all suites with their joined associations.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListSuites(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}
	if list == nil {
		list = []*core.SuiteDetails{}
	}
	common.JSON(w, http.StatusOK, list)
}

// Get returns a single suite with folder, items, executions and tags.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	suite, err := h.store.GetSuite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, suite)
}

// Create inserts a new suite. Status defaults to draft.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req core.NewSuite
	if !common.Decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		common.BadRequest(w, "name is required")
		return
	}

	suite, err := h.store.CreateSuite(r.Context(), req)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, suite)
}

// Update applies a partial update to a suite.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var patch core.SuitePatch
	if !common.Decode(w, r, &patch) {
		return
	}

	suite, err := h.store.UpdateSuite(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, suite)
}

// UpdateStatus sets the lifecycle status of a suite.
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !common.Decode(w, r, &req) {
		return
	}
	switch req.Status {
	case core.SuiteStatusDraft, core.SuiteStatusActive, core.SuiteStatusArchived:
	default:
		common.BadRequest(w, "invalid status")
		return
	}

	suite, err := h.store.UpdateSuite(r.Context(), chi.URLParam(r, "id"),
		core.SuitePatch{Status: &req.Status})
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, suite)
}

// Delete removes a suite; items, executions and tag assignments cascade.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSuite(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}

// Clone copies a suite and its items under a new name.
func (h *Handlers) Clone(w http.ResponseWriter, r *http.Request) {
	var req cloneRequest
	if !common.Decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		common.BadRequest(w, "name is required")
		return
	}

	id, err := h.store.CloneSuite(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, createdResponse{ID: id})
}

// ToTemplate saves a suite as a reusable template.
func (h *Handlers) ToTemplate(w http.ResponseWriter, r *http.Request) {
	var req toTemplateRequest
	if !common.Decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		common.BadRequest(w, "name is required")
		return
	}

	tmpl, err := h.store.CreateTemplateFromSuite(r.Context(),
		chi.URLParam(r, "id"), req.Name, req.Category)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, tmpl)
}

// SetTags replaces the tag assignments of a suite.
func (h *Handlers) SetTags(w http.ResponseWriter, r *http.Request) {
	var req tagsRequest
	if !common.Decode(w, r, &req) {
		return
	}

	if err := h.store.SetSuiteTags(r.Context(), chi.URLParam(r, "id"), req.TagIDs); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}
