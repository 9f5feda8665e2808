package state

import (
	"context"
	"fmt"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// ListTags returns all tags ordered by name.
func (s *SQLStore) ListTags(ctx context.Context) ([]*core.Tag, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*core.Tag
	for rows.Next() {
		t := &core.Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CreateTag inserts a new tag.
func (s *SQLStore) CreateTag(ctx context.Context, name, color string) (*core.Tag, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	t := &core.Tag{ID: generateID(), Name: name, Color: color}
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO tags (id, name, color) VALUES (?, ?, ?)`), t.ID, t.Name, t.Color)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return t, nil
}

// DeleteTag removes a tag; join rows go with it via the cascades.
func (s *SQLStore) DeleteTag(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM tags WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// SetItemTags replaces an item's tag assignments.
func (s *SQLStore) SetItemTags(ctx context.Context, itemID string, tagIDs []string) error {
	return s.setTags(ctx, "item_tags", "item_id", itemID, tagIDs)
}

// SetSuiteTags replaces a suite's tag assignments.
func (s *SQLStore) SetSuiteTags(ctx context.Context, suiteID string, tagIDs []string) error {
	return s.setTags(ctx, "suite_tags", "suite_id", suiteID, tagIDs)
}

func (s *SQLStore) setTags(ctx context.Context, table, ownerCol, ownerID string, tagIDs []string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM `+table+` WHERE `+ownerCol+` = ?`), ownerID); err != nil {
		return fmt.Errorf("failed to clear tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := s.db.ExecContext(ctx,
			s.rebind(`INSERT INTO `+table+` (`+ownerCol+`, tag_id) VALUES (?, ?)`), ownerID, tagID); err != nil {
			return fmt.Errorf("failed to assign tag: %w", err)
		}
	}
	return nil
}

// tagsFor reshapes the join rows into a plain tag list, the same
// flattening the views expect.
func (s *SQLStore) tagsFor(ctx context.Context, table, ownerCol, ownerID string) ([]*core.Tag, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT t.id, t.name, t.color FROM tags t
		 JOIN `+table+` j ON j.tag_id = t.id
		 WHERE j.`+ownerCol+` = ? ORDER BY t.name ASC`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*core.Tag
	for rows.Next() {
		t := &core.Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
