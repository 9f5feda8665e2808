// Package templates provides template catalog handlers for the UI.
package templates

import (
	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// SetupRoutes registers the templates feature routes.
func SetupRoutes(router chi.Router, store core.Store, notify *notifier.Notifier) error {
	handlers := NewHandlers(store, notify)

	router.Route("/api/templates", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Get("/{id}", handlers.Get)
		r.Delete("/{id}", handlers.Delete)
		r.Post("/{id}/materialize", handlers.Materialize)
	})

	return nil
}
