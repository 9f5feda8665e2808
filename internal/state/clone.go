package state

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// CloneSuite copies a suite and its items under a new name. The clone
// always starts as draft. Parent references are remapped to the freshly
// inserted copies so nested structure survives; a parent that cannot be
// remapped (deleted, or belonging to another suite) is dropped and the
// copy becomes a root.
//
// The flow is read, insert suite, insert items, with no rollback: a
// failure while copying items leaves the new suite orphaned with
// whatever items made it in.
func (s *SQLStore) CloneSuite(ctx context.Context, id, newName string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}

	source, err := s.GetSuite(ctx, id)
	if err != nil {
		return "", err
	}

	clone, err := s.CreateSuite(ctx, core.NewSuite{
		Name:        newName,
		Description: source.Description,
		Status:      core.SuiteStatusDraft,
		FolderID:    source.FolderID,
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug("cloning suite",
		slog.String("source", id), slog.String("clone", clone.ID), slog.Int("items", len(source.Items)))

	// First pass assigns new ids so the second pass can remap parents.
	newIDs := make(map[string]string, len(source.Items))
	for _, it := range source.Items {
		newIDs[it.ID] = generateID()
	}

	for _, it := range source.Items {
		var parentID *string
		if it.ParentID != nil {
			if mapped, ok := newIDs[*it.ParentID]; ok {
				parentID = &mapped
			}
		}

		dup := &core.Item{
			ID:             newIDs[it.ID],
			SuiteID:        clone.ID,
			Title:          it.Title,
			Description:    it.Description,
			ExpectedResult: it.ExpectedResult,
			Priority:       it.Priority,
			Status:         core.ItemStatusNotStarted,
			ParentID:       parentID,
			Position:       it.Position,
			Notes:          it.Notes,
			CreatedAt:      clone.CreatedAt,
			UpdatedAt:      clone.CreatedAt,
		}

		_, err := s.db.ExecContext(ctx,
			s.rebind(`INSERT INTO checklist_items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			dup.ID, dup.SuiteID, dup.Title, dup.Description, dup.ExpectedResult,
			dup.Priority, dup.Status, dup.ParentID, dup.Position, dup.Notes,
			dup.CreatedAt, dup.UpdatedAt,
		)
		if err != nil {
			return "", fmt.Errorf("failed to clone item: %w", err)
		}
	}

	return clone.ID, nil
}
