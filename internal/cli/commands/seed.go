package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load built-in template catalogs",
		Long: `Load the built-in test checklist templates into the database.

Seeding is idempotent: templates that already exist (matched by name)
are skipped. Additional catalogs can be loaded from YAML files in a
directory with --dir.`,
		Example: `  # Load the built-in templates
  checkdeck seed

  # Also load extra catalogs from a directory
  checkdeck seed --dir ./catalogs`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			seeder := cc.Seeder()

			created, err := seeder.Builtin(ctx)
			if err != nil {
				return fmt.Errorf("failed to seed built-in templates: %w", err)
			}

			if dir == "" {
				dir = cc.Cfg.CatalogDir
			}
			if dir != "" {
				n, err := seeder.Dir(ctx, dir)
				if err != nil {
					return fmt.Errorf("failed to seed catalogs from %s: %w", dir, err)
				}
				created += n
			}

			if created == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All templates already present, nothing to do")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %d template(s)\n", created)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory of extra template catalogs (default: catalog_dir from config)")

	return cmd
}
