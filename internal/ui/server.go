// Package ui provides the CheckDeck web server.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/checkdeck-io/checkdeck/internal/auth"
	"github.com/checkdeck-io/checkdeck/internal/metrics"
	"github.com/checkdeck-io/checkdeck/internal/seed"
	"github.com/checkdeck-io/checkdeck/internal/ui/appstate"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/internal/ui/router"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// Server is the main UI server.
type Server struct {
	store      core.Store
	auth       *auth.Service
	port       int
	watch      bool
	catalogDir string
	logger     *slog.Logger
	notifier   *notifier.Notifier
	metrics    *metrics.Metrics
	state      *appstate.State
	seeder     *seed.Seeder
	location   *time.Location
}

// Config holds configuration for the UI server.
type Config struct {
	Store      core.Store
	Auth       *auth.Service
	Port       int
	Watch      bool
	CatalogDir string
	Version    string
	Dialect    string
	Location   *time.Location
	Logger     *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := metrics.New()
	notify := notifier.New()
	notify.SetHook(m.BroadcastsTotal.Inc)

	return &Server{
		store:      cfg.Store,
		auth:       cfg.Auth,
		port:       cfg.Port,
		watch:      cfg.Watch,
		catalogDir: cfg.CatalogDir,
		logger:     logger,
		notifier:   notify,
		metrics:    m,
		state:      appstate.New(cfg.Version, cfg.Dialect),
		seeder:     seed.New(cfg.Store, logger),
		location:   cfg.Location,
	}
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
		s.auth.Middleware,
	)
	r.Use(s.metrics.Middleware)

	if err := router.SetupRoutes(r, router.Deps{
		Store:    s.store,
		Auth:     s.auth,
		Notifier: s.notifier,
		Metrics:  s.metrics,
		AppState: s.state,
		Location: s.location,
	}); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Watch the catalog directory if enabled
	if s.watch && s.catalogDir != "" {
		eg.Go(func() error {
			return s.watchCatalog(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchCatalog watches the template catalog directory and re-seeds when
// a catalog file changes.
func (s *Server) watchCatalog(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.catalogDir); err != nil {
		s.logger.Error("failed to watch catalog directory", "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			ext := filepath.Ext(event.Name)
			if ext != ".yaml" && ext != ".yml" {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("catalog changed, re-seeding", "file", event.Name)

				n, err := s.seeder.Dir(ctx, s.catalogDir)
				if err != nil {
					s.logger.Error("re-seed failed", "error", err)
					return
				}
				s.state.RecordSeed(n)
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
