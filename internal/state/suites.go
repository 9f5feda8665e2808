package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

const suiteColumns = "id, name, description, status, folder_id, created_at, updated_at"

func scanSuite(row interface{ Scan(...any) error }) (*core.Suite, error) {
	s := &core.Suite{}
	var folderID sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Status, &folderID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if folderID.Valid {
		s.FolderID = &folderID.String
	}
	return s, nil
}

// ListSuites returns every suite with its folder, items and executions
// joined, newest first.
func (s *SQLStore) ListSuites(ctx context.Context) ([]*core.SuiteDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+suiteColumns+` FROM test_suites ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list suites: %w", err)
	}
	defer rows.Close()

	var suites []*core.SuiteDetails
	for rows.Next() {
		suite, err := scanSuite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suite: %w", err)
		}
		suites = append(suites, &core.SuiteDetails{Suite: *suite})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list suites: %w", err)
	}

	for _, sd := range suites {
		if err := s.attachSuiteDetails(ctx, sd, false); err != nil {
			return nil, err
		}
	}
	return suites, nil
}

// GetSuite returns one suite with folder, items, executions and tags.
func (s *SQLStore) GetSuite(ctx context.Context, id string) (*core.SuiteDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+suiteColumns+` FROM test_suites WHERE id = ?`), id)
	suite, err := scanSuite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("suite %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suite: %w", err)
	}

	sd := &core.SuiteDetails{Suite: *suite}
	if err := s.attachSuiteDetails(ctx, sd, true); err != nil {
		return nil, err
	}
	return sd, nil
}

// attachSuiteDetails loads the joined associations for one suite.
func (s *SQLStore) attachSuiteDetails(ctx context.Context, sd *core.SuiteDetails, withTags bool) error {
	if sd.FolderID != nil {
		folder, err := s.getFolder(ctx, *sd.FolderID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return err
		}
		sd.Folder = folder
	}

	items, err := s.ListItems(ctx, sd.ID)
	if err != nil {
		return err
	}
	sd.Items = items

	executions, err := s.listExecutionRows(ctx, `WHERE suite_id = ?`, sd.ID)
	if err != nil {
		return err
	}
	sd.Executions = executions

	if withTags {
		tags, err := s.tagsFor(ctx, "suite_tags", "suite_id", sd.ID)
		if err != nil {
			return err
		}
		sd.Tags = tags
	}
	return nil
}

// CreateSuite inserts a new suite. Status defaults to draft.
func (s *SQLStore) CreateSuite(ctx context.Context, ns core.NewSuite) (*core.Suite, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	if ns.Status == "" {
		ns.Status = core.SuiteStatusDraft
	}
	now := time.Now().UTC()
	suite := &core.Suite{
		ID:          generateID(),
		Name:        ns.Name,
		Description: ns.Description,
		Status:      ns.Status,
		FolderID:    ns.FolderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.logger.Debug("creating suite", slog.String("id", suite.ID), slog.String("name", suite.Name))

	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO test_suites (id, name, description, status, folder_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		suite.ID, suite.Name, suite.Description, suite.Status, suite.FolderID, suite.CreatedAt, suite.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create suite: %w", err)
	}
	return suite, nil
}

// UpdateSuite applies a field-level patch and returns the updated row.
func (s *SQLStore) UpdateSuite(ctx context.Context, id string, patch core.SuitePatch) (*core.Suite, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if patch.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.FolderID != nil {
		set = append(set, "folder_id = ?")
		args = append(args, *patch.FolderID)
	}
	args = append(args, id)

	query := `UPDATE test_suites SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	res, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update suite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("suite %s: %w", id, core.ErrNotFound)
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+suiteColumns+` FROM test_suites WHERE id = ?`), id)
	suite, err := scanSuite(row)
	if err != nil {
		return nil, fmt.Errorf("failed to reload suite: %w", err)
	}
	return suite, nil
}

// DeleteSuite removes a suite. Items and executions go with it via the
// declared cascades; nothing else is compensated.
func (s *SQLStore) DeleteSuite(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM test_suites WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete suite: %w", err)
	}
	return nil
}

// RecentSuites returns the most recently updated suites with their item
// and execution counts.
func (s *SQLStore) RecentSuites(ctx context.Context, limit int) ([]*core.SuiteSummary, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT `+suiteColumns+`,
		       (SELECT COUNT(*) FROM checklist_items WHERE suite_id = test_suites.id),
		       (SELECT COUNT(*) FROM test_executions WHERE suite_id = test_suites.id)
		FROM test_suites ORDER BY updated_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent suites: %w", err)
	}
	defer rows.Close()

	var summaries []*core.SuiteSummary
	for rows.Next() {
		sum := &core.SuiteSummary{}
		var folderID sql.NullString
		err := rows.Scan(&sum.ID, &sum.Name, &sum.Description, &sum.Status, &folderID,
			&sum.CreatedAt, &sum.UpdatedAt, &sum.ItemCount, &sum.ExecutionCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suite summary: %w", err)
		}
		if folderID.Valid {
			sum.FolderID = &folderID.String
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// CountSuites counts suites, optionally restricted to one status.
func (s *SQLStore) CountSuites(ctx context.Context, status core.SuiteStatus) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	var (
		count int
		err   error
	)
	if status == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM test_suites`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx,
			s.rebind(`SELECT COUNT(*) FROM test_suites WHERE status = ?`), status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count suites: %w", err)
	}
	return count, nil
}
