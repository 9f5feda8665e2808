package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var asJSON bool
	var showTemplates bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List test suites",
		Long: `List all test suites with their status, item counts and last update.

Use --templates to list templates instead.`,
		Example: `  # List all suites
  checkdeck list

  # List as JSON
  checkdeck list --json

  # List templates
  checkdeck list --templates`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()

			if showTemplates {
				templates, err := cc.Store.ListTemplates(ctx)
				if err != nil {
					return fmt.Errorf("failed to list templates: %w", err)
				}
				if asJSON {
					return renderJSON(cmd, templates)
				}
				renderTemplateTable(cmd, templates)
				return nil
			}

			suites, err := cc.Store.ListSuites(ctx)
			if err != nil {
				return fmt.Errorf("failed to list suites: %w", err)
			}
			if asJSON {
				return renderJSON(cmd, suites)
			}
			renderSuiteTable(cmd, suites)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&showTemplates, "templates", false, "List templates instead of suites")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderSuiteTable(cmd *cobra.Command, suites []*core.SuiteDetails) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Status", "Items", "Executions", "Updated"})

	for _, s := range suites {
		t.AppendRow(table.Row{
			s.Name,
			s.Status,
			len(s.Items),
			len(s.Executions),
			s.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}

	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "(%d suites)\n", len(suites))
}

func renderTemplateTable(cmd *cobra.Command, templates []*core.TemplateDetails) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Category", "Items"})

	for _, tpl := range templates {
		t.AppendRow(table.Row{tpl.Name, tpl.Category, len(tpl.Items)})
	}

	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "(%d templates)\n", len(templates))
}
