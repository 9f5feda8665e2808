// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/checkdeck-io/checkdeck/internal/auth"
	"github.com/checkdeck-io/checkdeck/internal/metrics"
	"github.com/checkdeck-io/checkdeck/internal/ui/appstate"
	analyticsFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/analytics"
	authnFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/authn"
	"github.com/checkdeck-io/checkdeck/internal/ui/features/common"
	dashboardFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/dashboard"
	executionsFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/executions"
	foldersFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/folders"
	itemsFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/items"
	suitesFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/suites"
	tagsFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/tags"
	templatesFeature "github.com/checkdeck-io/checkdeck/internal/ui/features/templates"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// Deps bundles what the routes need from the server.
type Deps struct {
	Store    core.Store
	Auth     *auth.Service
	Notifier *notifier.Notifier
	Metrics  *metrics.Metrics
	AppState *appstate.State
	Location *time.Location
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		common.JSON(w, http.StatusOK, deps.AppState.Snapshot())
	})
	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	if err := authnFeature.SetupRoutes(router, deps.Auth); err != nil {
		return err
	}
	if err := suitesFeature.SetupRoutes(router, deps.Store, deps.Notifier); err != nil {
		return err
	}
	if err := itemsFeature.SetupRoutes(router, deps.Store, deps.Notifier); err != nil {
		return err
	}
	if err := executionsFeature.SetupRoutes(router, deps.Store, deps.Notifier); err != nil {
		return err
	}
	if err := templatesFeature.SetupRoutes(router, deps.Store, deps.Notifier); err != nil {
		return err
	}
	if err := foldersFeature.SetupRoutes(router, deps.Store, deps.Notifier); err != nil {
		return err
	}
	if err := tagsFeature.SetupRoutes(router, deps.Store, deps.Notifier); err != nil {
		return err
	}
	if err := analyticsFeature.SetupRoutes(router, deps.Store, deps.Location); err != nil {
		return err
	}
	if err := dashboardFeature.SetupRoutes(router, deps.Store, deps.Notifier, deps.Metrics); err != nil {
		return err
	}

	return nil
}
