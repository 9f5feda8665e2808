package commands

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/checkdeck-io/checkdeck/internal/auth"
	"github.com/checkdeck-io/checkdeck/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	NoSeed    bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the CheckDeck web server",
		Long: `Start a local web server providing the CheckDeck UI and API.

The server provides:
- Test suite and checklist item management
- Execution runs with pass/fail tracking
- Reusable templates
- Execution analytics and live dashboard updates`,
		Example: `  # Start on default port
  checkdeck serve

  # Start on custom port
  checkdeck serve --port 3000

  # Start without auto-opening browser
  checkdeck serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.NoSeed, "no-seed", false, "Skip seeding built-in templates")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cc.Cfg

	// CLI flags override config file
	port := cfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !opts.NoSeed {
		if n, err := cc.Seeder().Builtin(ctx); err != nil {
			return fmt.Errorf("failed to seed built-in templates: %w", err)
		} else if n > 0 {
			cc.Logger.Info("seeded built-in templates", "created", n)
		}
	}

	var svc *auth.Service
	if a := cfg.Auth; a != nil && a.ProviderURL != "" {
		svc = auth.New(auth.Config{
			ProviderURL:   a.ProviderURL,
			APIKey:        a.APIKey,
			SessionSecret: a.SessionSecret,
		}, cc.Logger)
	} else {
		svc = auth.New(auth.Config{}, cc.Logger)
	}

	server := ui.NewServer(ui.Config{
		Store:      cc.Store,
		Auth:       svc,
		Port:       port,
		Watch:      cfg.Watch,
		CatalogDir: cfg.CatalogDir,
		Version:    cmd.Root().Version,
		Dialect:    cfg.Dialect,
		Location:   cfg.Location(),
		Logger:     cc.Logger,
	})

	if !opts.NoBrowser {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	fmt.Printf("Starting CheckDeck on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
