// Package templates provides template catalog handlers for the UI.
package templates

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// Handlers provides HTTP handlers for the templates feature.
type Handlers struct {
	store    core.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: store, notifier: notify}
}

// List returns the template catalog, grouped by category then name.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListTemplates(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}
	if list == nil {
		list = []*core.TemplateDetails{}
	}
	common.JSON(w, http.StatusOK, list)
}

// Get returns one template with its items.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.store.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, tmpl)
}

// Delete removes a template and its items.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}

// Materialize creates a new draft suite from a template.
func (h *Handlers) Materialize(w http.ResponseWriter, r *http.Request) {
	var req materializeRequest
	if !common.Decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		common.BadRequest(w, "name is required")
		return
	}

	id, err := h.store.CreateSuiteFromTemplate(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, createdResponse{ID: id})
}
