package templates

// materializeRequest is the payload for POST /api/templates/{id}/materialize.
type materializeRequest struct {
	Name string `json:"name"`
}

// createdResponse carries the id of the suite produced from a template.
type createdResponse struct {
	ID string `json:"id"`
}
