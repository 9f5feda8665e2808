// Package executions provides test execution handlers for the UI.
package executions

import (
	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// SetupRoutes registers the executions feature routes.
func SetupRoutes(router chi.Router, store core.Store, notify *notifier.Notifier) error {
	handlers := NewHandlers(store, notify)

	// Suite-scoped routes live in the /api/suites subtree.
	router.Get("/api/suites/{id}/executions", handlers.ListBySuite)
	router.Post("/api/suites/{id}/executions", handlers.Start)

	router.Route("/api/executions", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Get("/{id}", handlers.Get)
		r.Post("/{id}/results", handlers.RecordResult)
		r.Post("/{id}/complete", handlers.Complete)
	})

	return nil
}
