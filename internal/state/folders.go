package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// ListFolders returns all folders ordered by name.
func (s *SQLStore) ListFolders(ctx context.Context) ([]*core.Folder, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, parent_id, created_at FROM folders ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []*core.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// CreateFolder inserts a new folder, optionally nested under a parent.
func (s *SQLStore) CreateFolder(ctx context.Context, name string, parentID *string) (*core.Folder, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	f := &core.Folder{
		ID:        generateID(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO folders (id, name, parent_id, created_at) VALUES (?, ?, ?, ?)`),
		f.ID, f.Name, f.ParentID, f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return f, nil
}

// DeleteFolder removes a folder. Suites pointing at it keep their
// folder_id; the reference simply resolves to nothing afterwards.
func (s *SQLStore) DeleteFolder(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM folders WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("folder %s: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *SQLStore) getFolder(ctx context.Context, id string) (*core.Folder, error) {
	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, name, parent_id, created_at FROM folders WHERE id = ?`), id)
	f, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("folder %s: %w", id, core.ErrNotFound)
	}
	return f, err
}

func scanFolder(row interface{ Scan(...any) error }) (*core.Folder, error) {
	f := &core.Folder{}
	var parentID sql.NullString
	if err := row.Scan(&f.ID, &f.Name, &parentID, &f.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan folder: %w", err)
	}
	if parentID.Valid {
		f.ParentID = &parentID.String
	}
	return f, nil
}
