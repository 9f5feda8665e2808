package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

const itemColumns = "id, suite_id, title, description, expected_result, priority, status, parent_id, position, notes, created_at, updated_at"

func scanItem(row interface{ Scan(...any) error }) (*core.Item, error) {
	it := &core.Item{}
	var parentID sql.NullString
	err := row.Scan(&it.ID, &it.SuiteID, &it.Title, &it.Description, &it.ExpectedResult,
		&it.Priority, &it.Status, &parentID, &it.Position, &it.Notes, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		it.ParentID = &parentID.String
	}
	return it, nil
}

// ListItems returns a suite's items with their tags, ordered by position
// ascending. Tree building happens in core, on top of this order.
func (s *SQLStore) ListItems(ctx context.Context, suiteID string) ([]*core.Item, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+itemColumns+` FROM checklist_items WHERE suite_id = ? ORDER BY position ASC`),
		suiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*core.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	for _, it := range items {
		tags, err := s.tagsFor(ctx, "item_tags", "item_id", it.ID)
		if err != nil {
			return nil, err
		}
		it.Tags = tags
	}
	return items, nil
}

// GetItem retrieves a single item by id.
func (s *SQLStore) GetItem(ctx context.Context, id string) (*core.Item, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+itemColumns+` FROM checklist_items WHERE id = ?`), id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return it, nil
}

// CreateItem inserts a new checklist item. Priority defaults to medium,
// status to not_started. Parent references are not validated against the
// suite; the tree builder treats unresolvable parents as roots.
func (s *SQLStore) CreateItem(ctx context.Context, ni core.NewItem) (*core.Item, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	if ni.Priority == "" {
		ni.Priority = core.PriorityMedium
	}
	if ni.Status == "" {
		ni.Status = core.ItemStatusNotStarted
	}
	now := time.Now().UTC()
	it := &core.Item{
		ID:             generateID(),
		SuiteID:        ni.SuiteID,
		Title:          ni.Title,
		Description:    ni.Description,
		ExpectedResult: ni.ExpectedResult,
		Priority:       ni.Priority,
		Status:         ni.Status,
		ParentID:       ni.ParentID,
		Position:       ni.Position,
		Notes:          ni.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO checklist_items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		it.ID, it.SuiteID, it.Title, it.Description, it.ExpectedResult,
		it.Priority, it.Status, it.ParentID, it.Position, it.Notes, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return it, nil
}

// UpdateItem applies a field-level patch and returns the updated row.
func (s *SQLStore) UpdateItem(ctx context.Context, id string, patch core.ItemPatch) (*core.Item, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	set, args := itemPatchClauses(patch)
	args = append(args, id)

	query := `UPDATE checklist_items SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	res, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("item %s: %w", id, core.ErrNotFound)
	}

	return s.GetItem(ctx, id)
}

// DeleteItem removes one item.
func (s *SQLStore) DeleteItem(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM checklist_items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// BulkDeleteItems removes every item in ids with one statement.
func (s *SQLStore) BulkDeleteItems(ctx context.Context, ids []string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM checklist_items WHERE id IN (` + placeholders(len(ids)) + `)`
	if _, err := s.db.ExecContext(ctx, s.rebind(query), anySlice(ids)...); err != nil {
		return fmt.Errorf("failed to bulk delete items: %w", err)
	}
	return nil
}

// BulkUpdateItems applies the same patch to every item in ids.
func (s *SQLStore) BulkUpdateItems(ctx context.Context, ids []string, patch core.ItemPatch) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if len(ids) == 0 {
		return nil
	}

	set, args := itemPatchClauses(patch)
	args = append(args, anySlice(ids)...)

	query := `UPDATE checklist_items SET ` + strings.Join(set, ", ") +
		` WHERE id IN (` + placeholders(len(ids)) + `)`
	if _, err := s.db.ExecContext(ctx, s.rebind(query), args...); err != nil {
		return fmt.Errorf("failed to bulk update items: %w", err)
	}
	return nil
}

// CountItems counts all checklist items.
func (s *SQLStore) CountItems(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checklist_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func itemPatchClauses(patch core.ItemPatch) ([]string, []any) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if patch.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.ExpectedResult != nil {
		set = append(set, "expected_result = ?")
		args = append(args, *patch.ExpectedResult)
	}
	if patch.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.ParentID != nil {
		set = append(set, "parent_id = ?")
		args = append(args, *patch.ParentID)
	}
	if patch.Position != nil {
		set = append(set, "position = ?")
		args = append(args, *patch.Position)
	}
	if patch.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, *patch.Notes)
	}
	return set, args
}
