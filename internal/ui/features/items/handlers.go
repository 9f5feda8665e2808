// Package items provides checklist item handlers for the UI.
package items

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// Handlers provides HTTP handlers for the items feature.
type Handlers struct {
	store    core.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: store, notifier: notify}
}

// ListTree returns the checklist hierarchy of a suite.
func (h *Handlers) ListTree(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, core.BuildItemTree(items))
}

// Create inserts a new item into a suite.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req core.NewItem
	if !common.Decode(w, r, &req) {
		return
	}
	req.SuiteID = chi.URLParam(r, "id")
	if req.Title == "" {
		common.BadRequest(w, "title is required")
		return
	}

	item, err := h.store.CreateItem(r.Context(), req)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, item)
}

// Update applies a partial update to an item.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var patch core.ItemPatch
	if !common.Decode(w, r, &patch) {
		return
	}

	item, err := h.store.UpdateItem(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, item)
}

// UpdateStatus sets the standing status of an item.
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !common.Decode(w, r, &req) {
		return
	}
	switch req.Status {
	case core.ItemStatusNotStarted, core.ItemStatusInProgress,
		core.ItemStatusPassed, core.ItemStatusFailed, core.ItemStatusBlocked:
	default:
		common.BadRequest(w, "invalid status")
		return
	}

	item, err := h.store.UpdateItem(r.Context(), chi.URLParam(r, "id"),
		core.ItemPatch{Status: &req.Status})
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, item)
}

// UpdatePosition moves an item to a new position and, optionally, a new
// parent.
func (h *Handlers) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !common.Decode(w, r, &req) {
		return
	}

	patch := core.ItemPatch{Position: &req.Position}
	if req.ParentID != nil {
		patch.ParentID = req.ParentID
	}
	item, err := h.store.UpdateItem(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusOK, item)
}

// Delete removes a single item.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes a batch of items in one statement.
func (h *Handlers) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if !common.Decode(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		common.BadRequest(w, "ids is required")
		return
	}

	if err := h.store.BulkDeleteItems(r.Context(), req.IDs); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}

// BulkUpdate applies the same patch to a batch of items.
func (h *Handlers) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if !common.Decode(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		common.BadRequest(w, "ids is required")
		return
	}

	if err := h.store.BulkUpdateItems(r.Context(), req.IDs, req.Patch); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}

// SetTags replaces the tag assignments of an item.
func (h *Handlers) SetTags(w http.ResponseWriter, r *http.Request) {
	var req tagsRequest
	if !common.Decode(w, r, &req) {
		return
	}

	if err := h.store.SetItemTags(r.Context(), chi.URLParam(r, "id"), req.TagIDs); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}
