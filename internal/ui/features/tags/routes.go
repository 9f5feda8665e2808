// Package tags provides tag management handlers for the UI.
package tags

import (
	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// SetupRoutes registers the tags feature routes.
func SetupRoutes(router chi.Router, store core.Store, notify *notifier.Notifier) error {
	handlers := NewHandlers(store, notify)

	router.Route("/api/tags", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Post("/", handlers.Create)
		r.Delete("/{id}", handlers.Delete)
	})

	return nil
}
