// Package common provides shared helpers for UI features.
package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err as a JSON error response. core.ErrNotFound maps to
// 404, everything else is a 500; the store error text is passed through.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, core.ErrNotFound) {
		status = http.StatusNotFound
	}
	JSON(w, status, map[string]string{"error": err.Error()})
}

// BadRequest writes a 400 JSON error response.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// Decode reads the request body into v. A failure is reported to the
// client as a 400 and false is returned.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}
