package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const starterConfig = `# CheckDeck configuration.
# Every key can also be set via CHECKDECK_* environment variables
# (nested keys use a double underscore, e.g. CHECKDECK_AUTH__API_KEY)
# or the matching CLI flag.

dialect: sqlite
dsn: .checkdeck/checkdeck.db
port: 8765
watch: true

# Extra template catalogs (YAML files) loaded at startup and re-loaded
# on change when watch is enabled.
# catalog_dir: ./catalogs

# IANA timezone used to bucket the daily execution trend.
# timezone: Europe/Berlin

# Hosted identity provider. Leave unset for single-user local mode.
# auth:
#   provider_url: https://your-project.supabase.co
#   api_key: your-anon-key
#   session_secret: change-me
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new CheckDeck workspace",
		Long: `Initialize a CheckDeck workspace with a starter configuration file.

This creates a checkdeck.yaml with commented defaults. The database
itself is created on first run of 'checkdeck serve'.`,
		Example: `  # Initialize in current directory
  checkdeck init

  # Initialize in a new directory
  checkdeck init my-checklists

  # Force overwrite existing config
  checkdeck init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "checkdeck.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("checkdeck.yaml already exists. Use --force to overwrite")
	}

	if err := os.WriteFile(configPath, []byte(starterConfig), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", configPath)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Adjust checkdeck.yaml if needed")
	fmt.Fprintln(out, "  2. Run 'checkdeck serve' to start the server")
	fmt.Fprintln(out, "  3. Open http://localhost:8765")
	return nil
}
