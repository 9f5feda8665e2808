// Package items provides checklist item handlers for the UI.
package items

import (
	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// SetupRoutes registers the items feature routes.
func SetupRoutes(router chi.Router, store core.Store, notify *notifier.Notifier) error {
	handlers := NewHandlers(store, notify)

	// Suite-scoped collection routes are registered directly; the suites
	// feature owns the /api/suites subtree mount.
	router.Get("/api/suites/{id}/items", handlers.ListTree)
	router.Post("/api/suites/{id}/items", handlers.Create)

	router.Route("/api/items", func(r chi.Router) {
		r.Patch("/{id}", handlers.Update)
		r.Delete("/{id}", handlers.Delete)
		r.Put("/{id}/status", handlers.UpdateStatus)
		r.Put("/{id}/position", handlers.UpdatePosition)
		r.Put("/{id}/tags", handlers.SetTags)
		r.Post("/bulk-delete", handlers.BulkDelete)
		r.Post("/bulk-update", handlers.BulkUpdate)
	})

	return nil
}
