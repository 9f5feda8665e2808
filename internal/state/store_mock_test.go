package state

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkdeck-io/checkdeck/pkg/core"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := New(slog.New(slog.DiscardHandler))
	store.OpenWithDB(db, DialectSQLite)
	return store, mock
}

func TestSQLStore_QueryErrors(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		call      func(ctx context.Context, store *SQLStore) error
		errMsg    string
	}{
		{
			name: "list suites query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM test_suites").WillReturnError(assert.AnError)
			},
			call: func(ctx context.Context, store *SQLStore) error {
				_, err := store.ListSuites(ctx)
				return err
			},
			errMsg: "failed to list suites",
		},
		{
			name: "list suites scan fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name"}).AddRow("s1", "smoke")
				mock.ExpectQuery("SELECT (.+) FROM test_suites").WillReturnRows(rows)
			},
			call: func(ctx context.Context, store *SQLStore) error {
				_, err := store.ListSuites(ctx)
				return err
			},
			errMsg: "failed to scan suite",
		},
		{
			name: "create suite insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO test_suites").WillReturnError(assert.AnError)
			},
			call: func(ctx context.Context, store *SQLStore) error {
				_, err := store.CreateSuite(ctx, core.NewSuite{Name: "smoke"})
				return err
			},
			errMsg: "failed to create suite",
		},
		{
			name: "count suites fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnError(assert.AnError)
			},
			call: func(ctx context.Context, store *SQLStore) error {
				_, err := store.CountSuites(ctx, "")
				return err
			},
			errMsg: "failed to count suites",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setupMock(mock)

			err := tt.call(context.Background(), store)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateSuite_NoRowsIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE test_suites").WillReturnResult(sqlmock.NewResult(0, 0))

	name := "renamed"
	_, err := store.UpdateSuite(context.Background(), "missing", core.SuitePatch{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClose(t *testing.T) {
	t.Run("nil connection", func(t *testing.T) {
		assert.NoError(t, New(nil).Close())
	})

	t.Run("open connection", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		mock.ExpectClose()

		store := New(nil)
		store.OpenWithDB(db, DialectSQLite)
		assert.NoError(t, store.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRebind(t *testing.T) {
	sqlite := &SQLStore{dialect: DialectSQLite}
	assert.Equal(t, "SELECT * FROM t WHERE id = ?", sqlite.rebind("SELECT * FROM t WHERE id = ?"))

	pg := &SQLStore{dialect: DialectPostgres}
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3",
		pg.rebind("UPDATE t SET a = ?, b = ? WHERE id = ?"))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
