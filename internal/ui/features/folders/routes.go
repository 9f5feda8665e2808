// Package folders provides folder management handlers for the UI.
package folders

import (
	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// SetupRoutes registers the folders feature routes.
func SetupRoutes(router chi.Router, store core.Store, notify *notifier.Notifier) error {
	handlers := NewHandlers(store, notify)

	router.Route("/api/folders", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Post("/", handlers.Create)
		r.Get("/tree", handlers.Tree)
		r.Delete("/{id}", handlers.Delete)
	})

	return nil
}
