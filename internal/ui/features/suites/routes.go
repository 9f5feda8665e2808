// Package suites provides suite management handlers for the UI.
package suites

import (
	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// SetupRoutes registers the suites feature routes.
func SetupRoutes(router chi.Router, store core.Store, notify *notifier.Notifier) error {
	handlers := NewHandlers(store, notify)

	router.Route("/api/suites", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Post("/", handlers.Create)
		r.Get("/{id}", handlers.Get)
		r.Patch("/{id}", handlers.Update)
		r.Delete("/{id}", handlers.Delete)
		r.Put("/{id}/status", handlers.UpdateStatus)
		r.Put("/{id}/tags", handlers.SetTags)
		r.Post("/{id}/clone", handlers.Clone)
		r.Post("/{id}/template", handlers.ToTemplate)
	})

	return nil
}
