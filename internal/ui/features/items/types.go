package items

import "github.com/checkdeck-io/checkdeck/pkg/core"

// statusRequest is the payload for PUT /api/items/{id}/status.
type statusRequest struct {
	Status core.ItemStatus `json:"status"`
}

// positionRequest is the payload for PUT /api/items/{id}/position.
// ParentID moves the item in the hierarchy at the same time; omitting
// it leaves the parent untouched.
type positionRequest struct {
	Position int     `json:"position"`
	ParentID *string `json:"parent_id,omitempty"`
}

// bulkDeleteRequest is the payload for POST /api/items/bulk-delete.
type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// bulkUpdateRequest is the payload for POST /api/items/bulk-update.
type bulkUpdateRequest struct {
	IDs   []string       `json:"ids"`
	Patch core.ItemPatch `json:"patch"`
}

// tagsRequest is the payload for PUT /api/items/{id}/tags.
type tagsRequest struct {
	TagIDs []string `json:"tag_ids"`
}
