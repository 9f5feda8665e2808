// Package seed loads the built-in template catalog into the store. The
// catalog ships embedded; additional catalog files can be loaded from a
// directory, which the server's watch mode re-reads on change.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

//go:embed catalog.yaml
var builtin embed.FS

// catalogFile is the YAML document shape of a catalog.
type catalogFile struct {
	Templates []catalogTemplate `yaml:"templates"`
}

type catalogTemplate struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Category    string        `yaml:"category"`
	Items       []catalogItem `yaml:"items"`
}

type catalogItem struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	ExpectedResult string `yaml:"expected_result"`
	Priority       string `yaml:"priority"`
}

// Seeder loads catalogs into a store.
type Seeder struct {
	store  core.Store
	logger *slog.Logger
}

// New creates a Seeder. If logger is nil, a discard logger is used.
func New(store core.Store, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Seeder{store: store, logger: logger}
}

// Builtin seeds the embedded catalog. Templates whose name already
// exists are skipped, so re-seeding is safe. Returns the number of
// templates created.
func (s *Seeder) Builtin(ctx context.Context) (int, error) {
	data, err := builtin.ReadFile("catalog.yaml")
	if err != nil {
		return 0, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return s.load(ctx, data)
}

// Dir seeds every .yaml/.yml catalog file in dir. A missing directory
// is not an error; it just seeds nothing.
func (s *Seeder) Dir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	created := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return created, fmt.Errorf("failed to read catalog %s: %w", e.Name(), err)
		}
		n, err := s.load(ctx, data)
		created += n
		if err != nil {
			return created, fmt.Errorf("failed to load catalog %s: %w", e.Name(), err)
		}
	}
	return created, nil
}

func (s *Seeder) load(ctx context.Context, data []byte) (int, error) {
	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return 0, fmt.Errorf("failed to parse catalog: %w", err)
	}

	existing, err := s.store.ListTemplates(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t.Name] = true
	}

	created := 0
	for _, ct := range catalog.Templates {
		if ct.Name == "" {
			return created, fmt.Errorf("catalog template without a name")
		}
		if seen[ct.Name] {
			s.logger.Debug("template already seeded", "name", ct.Name)
			continue
		}

		items := make([]*core.TemplateItem, len(ct.Items))
		for i, ci := range ct.Items {
			priority := core.Priority(ci.Priority)
			if priority == "" {
				priority = core.PriorityMedium
			}
			items[i] = &core.TemplateItem{
				Title:          ci.Title,
				Description:    ci.Description,
				ExpectedResult: ci.ExpectedResult,
				Priority:       priority,
				Position:       i,
			}
		}

		if _, err := s.store.CreateTemplate(ctx, core.Template{
			Name:        ct.Name,
			Description: ct.Description,
			Category:    ct.Category,
		}, items); err != nil {
			return created, fmt.Errorf("failed to seed template %s: %w", ct.Name, err)
		}
		s.logger.Info("seeded template", "name", ct.Name, "items", len(items))
		seen[ct.Name] = true
		created++
	}
	return created, nil
}
