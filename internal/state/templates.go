package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

const templateColumns = "id, name, description, category, created_at"

func scanTemplate(row interface{ Scan(...any) error }) (*core.Template, error) {
	t := &core.Template{}
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTemplates returns all templates with their items, ordered by
// category then name.
func (s *SQLStore) ListTemplates(ctx context.Context) ([]*core.TemplateDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM templates ORDER BY category ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*core.TemplateDetails
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, &core.TemplateDetails{Template: *t})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	for _, td := range templates {
		items, err := s.templateItems(ctx, td.ID)
		if err != nil {
			return nil, err
		}
		td.Items = items
	}
	return templates, nil
}

// GetTemplate returns one template with its items.
func (s *SQLStore) GetTemplate(ctx context.Context, id string) (*core.TemplateDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+templateColumns+` FROM templates WHERE id = ?`), id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	items, err := s.templateItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &core.TemplateDetails{Template: *t, Items: items}, nil
}

func (s *SQLStore) templateItems(ctx context.Context, templateID string) ([]*core.TemplateItem, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, template_id, title, description, expected_result, priority, position
		 FROM template_items WHERE template_id = ? ORDER BY position ASC`), templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list template items: %w", err)
	}
	defer rows.Close()

	var items []*core.TemplateItem
	for rows.Next() {
		it := &core.TemplateItem{}
		err := rows.Scan(&it.ID, &it.TemplateID, &it.Title, &it.Description,
			&it.ExpectedResult, &it.Priority, &it.Position)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateTemplate inserts a template and its items. Category defaults to
// Custom.
func (s *SQLStore) CreateTemplate(ctx context.Context, t core.Template, items []*core.TemplateItem) (*core.Template, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	if t.ID == "" {
		t.ID = generateID()
	}
	if t.Category == "" {
		t.Category = "Custom"
	}
	t.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO templates (`+templateColumns+`) VALUES (?, ?, ?, ?, ?)`),
		t.ID, t.Name, t.Description, t.Category, t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	for _, it := range items {
		if err := s.insertTemplateItem(ctx, t.ID, it); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (s *SQLStore) insertTemplateItem(ctx context.Context, templateID string, it *core.TemplateItem) error {
	if it.ID == "" {
		it.ID = generateID()
	}
	it.TemplateID = templateID
	if it.Priority == "" {
		it.Priority = core.PriorityMedium
	}

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO template_items (id, template_id, title, description, expected_result, priority, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		it.ID, it.TemplateID, it.Title, it.Description, it.ExpectedResult, it.Priority, it.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert template item: %w", err)
	}
	return nil
}

// DeleteTemplate removes a template's items, then the template.
func (s *SQLStore) DeleteTemplate(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM template_items WHERE template_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete template items: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM templates WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// CreateSuiteFromTemplate materializes a template into a new draft suite.
// Template items become checklist items at the same positions; templates
// carry no hierarchy, so the new suite is flat. A failure after the suite
// insert leaves it orphaned with no items; there is no rollback.
func (s *SQLStore) CreateSuiteFromTemplate(ctx context.Context, templateID, suiteName string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}

	template, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return "", err
	}

	suite, err := s.CreateSuite(ctx, core.NewSuite{
		Name:        suiteName,
		Description: template.Description,
		Status:      core.SuiteStatusDraft,
	})
	if err != nil {
		return "", err
	}

	for _, it := range template.Items {
		_, err := s.CreateItem(ctx, core.NewItem{
			SuiteID:        suite.ID,
			Title:          it.Title,
			Description:    it.Description,
			ExpectedResult: it.ExpectedResult,
			Priority:       it.Priority,
			Position:       it.Position,
		})
		if err != nil {
			return "", fmt.Errorf("failed to copy template item: %w", err)
		}
	}
	return suite.ID, nil
}

// CreateTemplateFromSuite snapshots a suite's items into a new template.
// Item hierarchy is flattened; template items carry no parent links.
func (s *SQLStore) CreateTemplateFromSuite(ctx context.Context, suiteID, name, category string) (*core.Template, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	suite, err := s.GetSuite(ctx, suiteID)
	if err != nil {
		return nil, err
	}

	items := make([]*core.TemplateItem, len(suite.Items))
	for i, it := range suite.Items {
		items[i] = &core.TemplateItem{
			Title:          it.Title,
			Description:    it.Description,
			ExpectedResult: it.ExpectedResult,
			Priority:       it.Priority,
			Position:       it.Position,
		}
	}

	return s.CreateTemplate(ctx, core.Template{
		Name:        name,
		Description: suite.Description,
		Category:    category,
	}, items)
}
