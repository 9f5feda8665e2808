package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

const executionColumns = "id, suite_id, name, status, total_items, passed_items, failed_items, blocked_items, started_at, completed_at"

func scanExecution(row interface{ Scan(...any) error }) (*core.Execution, error) {
	ex := &core.Execution{}
	var completedAt sql.NullTime
	err := row.Scan(&ex.ID, &ex.SuiteID, &ex.Name, &ex.Status, &ex.TotalItems,
		&ex.PassedItems, &ex.FailedItems, &ex.BlockedItems, &ex.StartedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		ex.CompletedAt = &completedAt.Time
	}
	return ex, nil
}

// StartExecution creates an execution for a suite. TotalItems is a
// snapshot of the suite's current item count and is never re-synced.
func (s *SQLStore) StartExecution(ctx context.Context, suiteID, name string) (*core.ExecutionDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var total int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM checklist_items WHERE suite_id = ?`), suiteID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count suite items: %w", err)
	}

	now := time.Now().UTC()
	if name == "" {
		name = "Execution " + now.Format("2006-01-02")
	}
	ex := &core.Execution{
		ID:         generateID(),
		SuiteID:    suiteID,
		Name:       name,
		Status:     core.ExecutionStatusInProgress,
		TotalItems: total,
		StartedAt:  now,
	}

	s.logger.Debug("starting execution",
		slog.String("id", ex.ID), slog.String("suite_id", suiteID), slog.Int("total_items", total))

	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO test_executions (id, suite_id, name, status, total_items, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		ex.ID, ex.SuiteID, ex.Name, ex.Status, ex.TotalItems, ex.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start execution: %w", err)
	}

	return s.GetExecution(ctx, ex.ID)
}

// GetExecution returns one execution with its suite and all recorded
// results, each joined with its item.
func (s *SQLStore) GetExecution(ctx context.Context, id string) (*core.ExecutionDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+executionColumns+` FROM test_executions WHERE id = ?`), id)
	ex, err := scanExecution(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("execution %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get execution: %w", err)
	}

	detail := &core.ExecutionDetails{Execution: *ex}

	suiteRow := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+suiteColumns+` FROM test_suites WHERE id = ?`), ex.SuiteID)
	suite, err := scanSuite(suiteRow)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get execution suite: %w", err)
	}
	detail.Suite = suite

	results, err := s.resultsForExecution(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Results = results
	return detail, nil
}

// resultsForExecution loads an execution's results in insertion order,
// each joined with its checklist item when it still exists.
func (s *SQLStore) resultsForExecution(ctx context.Context, executionID string) ([]*core.ResultDetails, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT r.id, r.execution_id, r.checklist_item_id, r.status, r.comment, r.duration_seconds, r.created_at,
		       i.id, i.suite_id, i.title, i.description, i.expected_result, i.priority, i.status, i.parent_id, i.position, i.notes, i.created_at, i.updated_at
		FROM execution_results r
		LEFT JOIN checklist_items i ON i.id = r.checklist_item_id
		WHERE r.execution_id = ?
		ORDER BY r.created_at ASC, r.id ASC`), executionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []*core.ResultDetails
	for rows.Next() {
		rd, err := scanResultWithItem(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, rd)
	}
	return results, rows.Err()
}

// RecordResult inserts a result row and recomputes the execution's
// denormalized counters by re-summing all of its results. The insert and
// the recompute share one transaction; within it, duplicate results for
// the same item still double-count, and skipped results count in none of
// the stored counters.
func (s *SQLStore) RecordResult(ctx context.Context, executionID string, nr core.NewResult) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var duration any
	if nr.DurationSeconds != nil {
		duration = *nr.DurationSeconds
	}

	_, err = tx.ExecContext(ctx,
		s.rebind(`INSERT INTO execution_results (id, execution_id, checklist_item_id, status, comment, duration_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		generateID(), executionID, nr.ChecklistItemID, nr.Status, nr.Comment, duration, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		s.rebind(`SELECT status FROM execution_results WHERE execution_id = ?`), executionID)
	if err != nil {
		return fmt.Errorf("failed to reread results: %w", err)
	}

	var passed, failed, blocked int
	for rows.Next() {
		var status core.ResultStatus
		if err := rows.Scan(&status); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan result status: %w", err)
		}
		switch status {
		case core.ResultStatusPassed:
			passed++
		case core.ResultStatusFailed:
			failed++
		case core.ResultStatusBlocked:
			blocked++
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to reread results: %w", err)
	}
	rows.Close()

	_, err = tx.ExecContext(ctx,
		s.rebind(`UPDATE test_executions SET passed_items = ?, failed_items = ?, blocked_items = ? WHERE id = ?`),
		passed, failed, blocked, executionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update execution counters: %w", err)
	}

	return tx.Commit()
}

// CompleteExecution marks an execution completed and stamps the time.
// Calling it again only overwrites the timestamp; counters are untouched
// and no check is made that every item was tested.
func (s *SQLStore) CompleteExecution(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.ExecContext(ctx,
		s.rebind(`UPDATE test_executions SET status = ?, completed_at = ? WHERE id = ?`),
		core.ExecutionStatusCompleted, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete execution: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("execution %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// listExecutionRows loads executions matching an optional WHERE clause,
// newest first.
func (s *SQLStore) listExecutionRows(ctx context.Context, where string, args ...any) ([]*core.Execution, error) {
	query := `SELECT ` + executionColumns + ` FROM test_executions ` + where + ` ORDER BY started_at DESC`
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}
	defer rows.Close()

	var executions []*core.Execution
	for rows.Next() {
		ex, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		executions = append(executions, ex)
	}
	return executions, rows.Err()
}

// withSuites joins the owning suite onto each execution.
func (s *SQLStore) withSuites(ctx context.Context, executions []*core.Execution) ([]*core.ExecutionDetails, error) {
	details := make([]*core.ExecutionDetails, len(executions))
	suites := make(map[string]*core.Suite)
	for i, ex := range executions {
		suite, ok := suites[ex.SuiteID]
		if !ok {
			row := s.db.QueryRowContext(ctx,
				s.rebind(`SELECT `+suiteColumns+` FROM test_suites WHERE id = ?`), ex.SuiteID)
			var err error
			suite, err = scanSuite(row)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("failed to join suite: %w", err)
			}
			suites[ex.SuiteID] = suite
		}
		details[i] = &core.ExecutionDetails{Execution: *ex, Suite: suite}
	}
	return details, nil
}

// ListExecutions returns all executions with their suites, newest first.
func (s *SQLStore) ListExecutions(ctx context.Context) ([]*core.ExecutionDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	executions, err := s.listExecutionRows(ctx, "")
	if err != nil {
		return nil, err
	}
	return s.withSuites(ctx, executions)
}

// ListExecutionsBySuite returns one suite's executions, newest first.
func (s *SQLStore) ListExecutionsBySuite(ctx context.Context, suiteID string) ([]*core.ExecutionDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	executions, err := s.listExecutionRows(ctx, `WHERE suite_id = ?`, suiteID)
	if err != nil {
		return nil, err
	}
	return s.withSuites(ctx, executions)
}

// ListExecutionsSince returns executions started at or after the given
// time, oldest first. This is the trend calculation's pre-filter.
func (s *SQLStore) ListExecutionsSince(ctx context.Context, since time.Time) ([]*core.Execution, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+executionColumns+` FROM test_executions WHERE started_at >= ? ORDER BY started_at ASC`),
		since)
	if err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}
	defer rows.Close()

	var executions []*core.Execution
	for rows.Next() {
		ex, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		executions = append(executions, ex)
	}
	return executions, rows.Err()
}

// CountExecutions counts executions, optionally restricted to one status.
func (s *SQLStore) CountExecutions(ctx context.Context, status core.ExecutionStatus) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	var (
		count int
		err   error
	)
	if status == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM test_executions`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx,
			s.rebind(`SELECT COUNT(*) FROM test_executions WHERE status = ?`), status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count executions: %w", err)
	}
	return count, nil
}

// RecentExecutions returns the newest executions with suites joined.
func (s *SQLStore) RecentExecutions(ctx context.Context, limit int) ([]*core.ExecutionDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+executionColumns+` FROM test_executions ORDER BY started_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent executions: %w", err)
	}
	executions, err := collectExecutions(rows)
	if err != nil {
		return nil, err
	}
	return s.withSuites(ctx, executions)
}

// ActiveExecutions returns the newest in-progress executions with suites
// joined.
func (s *SQLStore) ActiveExecutions(ctx context.Context, limit int) ([]*core.ExecutionDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+executionColumns+` FROM test_executions WHERE status = ? ORDER BY started_at DESC LIMIT ?`),
		core.ExecutionStatusInProgress, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active executions: %w", err)
	}
	executions, err := collectExecutions(rows)
	if err != nil {
		return nil, err
	}
	return s.withSuites(ctx, executions)
}

func collectExecutions(rows *sql.Rows) ([]*core.Execution, error) {
	defer rows.Close()

	var executions []*core.Execution
	for rows.Next() {
		ex, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		executions = append(executions, ex)
	}
	return executions, rows.Err()
}

// FailedResults returns all failed results joined with their items, in
// insertion order. This feeds the most-failed ranking.
func (s *SQLStore) FailedResults(ctx context.Context) ([]*core.ResultDetails, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT r.id, r.execution_id, r.checklist_item_id, r.status, r.comment, r.duration_seconds, r.created_at,
		       i.id, i.suite_id, i.title, i.description, i.expected_result, i.priority, i.status, i.parent_id, i.position, i.notes, i.created_at, i.updated_at
		FROM execution_results r
		LEFT JOIN checklist_items i ON i.id = r.checklist_item_id
		WHERE r.status = ?
		ORDER BY r.created_at ASC, r.id ASC`), core.ResultStatusFailed)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed results: %w", err)
	}
	defer rows.Close()

	var results []*core.ResultDetails
	for rows.Next() {
		rd, err := scanResultWithItem(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, rd)
	}
	return results, rows.Err()
}

func scanResultWithItem(rows *sql.Rows) (*core.ResultDetails, error) {
	rd := &core.ResultDetails{}
	var duration sql.NullInt64
	var itemID, itemSuiteID, title, description, expected sql.NullString
	var priority, status, parentID, notes sql.NullString
	var position sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(&rd.ID, &rd.ExecutionID, &rd.ChecklistItemID, &rd.Status, &rd.Comment, &duration, &rd.CreatedAt,
		&itemID, &itemSuiteID, &title, &description, &expected,
		&priority, &status, &parentID, &position, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan result: %w", err)
	}
	if duration.Valid {
		d := int(duration.Int64)
		rd.DurationSeconds = &d
	}
	if itemID.Valid {
		item := &core.Item{
			ID:             itemID.String,
			SuiteID:        itemSuiteID.String,
			Title:          title.String,
			Description:    description.String,
			ExpectedResult: expected.String,
			Priority:       core.Priority(priority.String),
			Status:         core.ItemStatus(status.String),
			Position:       int(position.Int64),
			Notes:          notes.String,
			CreatedAt:      createdAt.Time,
			UpdatedAt:      updatedAt.Time,
		}
		if parentID.Valid {
			item.ParentID = &parentID.String
		}
		rd.Item = item
	}
	return rd, nil
}
