// Package authn provides the session endpoints for the UI.
package authn

import (
	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/auth"
)

// SetupRoutes registers the session boundary routes.
func SetupRoutes(router chi.Router, svc *auth.Service) error {
	handlers := NewHandlers(svc)

	router.Get("/auth/session", handlers.Session)
	router.Post("/auth/callback", handlers.Callback)
	router.Post("/auth/signout", handlers.SignOut)

	return nil
}
