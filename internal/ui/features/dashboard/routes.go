// Package dashboard provides the dashboard summary and the live-update
// stream for the UI.
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/metrics"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// SetupRoutes registers the dashboard feature routes.
func SetupRoutes(router chi.Router, store core.Store, notify *notifier.Notifier, m *metrics.Metrics) error {
	handlers := NewHandlers(store, notify, m)

	router.Get("/api/dashboard", handlers.Summary)
	router.Get("/updates", handlers.Updates)

	return nil
}
