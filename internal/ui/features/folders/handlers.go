// Package folders provides folder management handlers for the UI.
package folders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// Handlers provides HTTP handlers for the folders feature.
type Handlers struct {
	store    core.Store
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{store: store, notifier: notify}
}

// createRequest is the payload for POST /api/folders.
type createRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// treeResponse is the payload of GET /api/folders/tree.
type treeResponse struct {
	Folders     []*core.FolderNode `json:"folders"`
	LooseSuites []*core.Suite      `json:"loose_suites"`
}

// List returns all folders as a flat list.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListFolders(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}
	if list == nil {
		list = []*core.Folder{}
	}
	common.JSON(w, http.StatusOK, list)
}

// Tree returns the folder hierarchy with suites attached to their
// folders, plus the suites that sit outside any folder.
func (h *Handlers) Tree(w http.ResponseWriter, r *http.Request) {
	folders, err := h.store.ListFolders(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}
	details, err := h.store.ListSuites(r.Context())
	if err != nil {
		common.Error(w, err)
		return
	}

	suites := make([]*core.Suite, len(details))
	for i, sd := range details {
		suites[i] = &sd.Suite
	}
	roots, loose := core.BuildFolderTree(folders, suites)
	common.JSON(w, http.StatusOK, treeResponse{Folders: roots, LooseSuites: loose})
}

// Create inserts a new folder.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !common.Decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		common.BadRequest(w, "name is required")
		return
	}

	folder, err := h.store.CreateFolder(r.Context(), req.Name, req.ParentID)
	if err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	common.JSON(w, http.StatusCreated, folder)
}

// Delete removes a folder.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteFolder(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.Error(w, err)
		return
	}
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}
