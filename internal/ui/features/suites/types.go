package suites

import "github.com/checkdeck-io/checkdeck/pkg/core"

// cloneRequest is the payload for POST /api/suites/{id}/clone.
type cloneRequest struct {
	Name string `json:"name"`
}

// statusRequest is the payload for PUT /api/suites/{id}/status.
type statusRequest struct {
	Status core.SuiteStatus `json:"status"`
}

// toTemplateRequest is the payload for POST /api/suites/{id}/template.
type toTemplateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// tagsRequest is the payload for PUT /api/suites/{id}/tags.
type tagsRequest struct {
	TagIDs []string `json:"tag_ids"`
}

// createdResponse is returned by flows that produce a new entity and
// only need to hand back its id.
type createdResponse struct {
	ID string `json:"id"`
}
