// Package state implements core.Store against a relational database.
// It speaks to either a local SQLite file (the default) or a hosted
// PostgreSQL instance; every operation is a plain filtered query, insert,
// update or delete plus a shallow reshape of the rows.
package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported store dialects.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// SQLStore implements core.Store over database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect string
	logger  *slog.Logger
}

// New creates an unopened store. If logger is nil, a discard logger
// is used.
func New(logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLStore{logger: logger}
}

// Open connects to the database. For the sqlite dialect, dsn is a file
// path or ":memory:"; for postgres it is a pgx connection string.
func (s *SQLStore) Open(dialect, dsn string) error {
	var (
		db  *sql.DB
		err error
	)

	switch dialect {
	case DialectSQLite:
		if dsn == ":memory:" {
			// A connection pool of size one keeps the in-memory database
			// alive and visible to every query.
			dsn = "file::memory:?_pragma=foreign_keys(1)"
		} else {
			dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dsn)
		}
		db, err = sql.Open("sqlite", dsn)
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	case DialectPostgres:
		db, err = sql.Open("pgx", dsn)
	default:
		return fmt.Errorf("unsupported store dialect: %s", dialect)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	s.db = db
	s.dialect = dialect
	s.logger.Debug("store opened", slog.String("dialect", dialect))
	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying connection for migrations and tests.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// OpenWithDB attaches an existing connection, bypassing Open. Used by
// tests that stub the database.
func (s *SQLStore) OpenWithDB(db *sql.DB, dialect string) {
	s.db = db
	s.dialect = dialect
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// rebind rewrites ? placeholders to $1..$N for postgres. Queries are
// written with ? throughout; sqlite takes them as-is.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// placeholders returns a comma-joined list of n ? markers for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// anySlice converts string arguments to []any for variadic query calls.
func anySlice(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
