// Package analytics provides the analytics overview handler for the UI.
package analytics

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// SetupRoutes registers the analytics feature routes.
func SetupRoutes(router chi.Router, store core.Store, loc *time.Location) error {
	handlers := NewHandlers(store, loc)

	router.Get("/api/analytics", handlers.Overview)

	return nil
}
