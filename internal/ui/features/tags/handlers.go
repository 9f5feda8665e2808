// Package tags provides tag management handlers for the UI.
package tags

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// Handlers provides HTTP handlers for the tags feature.
type Handlers struct {
	store    core.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: store, notifier: notify}
}

// createRequest is the payload for POST /api/tags.
type createRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// List returns all tags.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListTags(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}
	if list == nil {
		list = []*core.Tag{}
	}
	common.JSON(w, http.StatusOK, list)
}

// Create inserts a new tag.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !common.Decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		common.BadRequest(w, "name is required")
		return
	}

	tag, err := h.store.CreateTag(r.Context(), req.Name, req.Color)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, tag)
}

// Delete removes a tag and all of its assignments.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTag(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}
