// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/checkdeck-io/checkdeck/internal/state"
	"github.com/checkdeck-io/checkdeck/internal/testutil"
	"github.com/checkdeck-io/checkdeck/internal/ui/notifier"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

// TestFixture holds the dependencies UI handler tests need.
type TestFixture struct {
	Store    core.Store
	Notifier *notifier.Notifier
}

// SetupTestFixture creates an in-memory store with the schema applied,
// plus a notifier.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	store := state.New(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(state.DialectSQLite, ":memory:"))
	require.NoError(t, store.Migrate())

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestFixture{
		Store:    store,
		Notifier: notifier.New(),
	}
}

// CreateSuite inserts a suite for test setup.
func (f *TestFixture) CreateSuite(t *testing.T, name string) *core.Suite {
	t.Helper()
	suite, err := f.Store.CreateSuite(context.Background(), core.NewSuite{Name: name})
	require.NoError(t, err)
	return suite
}

// CreateItem inserts an item for test setup.
func (f *TestFixture) CreateItem(t *testing.T, suiteID, title string, position int) *core.Item {
	t.Helper()
	item, err := f.Store.CreateItem(context.Background(), core.NewItem{
		SuiteID:  suiteID,
		Title:    title,
		Position: position,
	})
	require.NoError(t, err)
	return item
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context deadline, used for
// exercising the long-lived update stream.
func RequestWithTimeout(r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	_ = cancel // the deadline cancels the context in tests
	return r.WithContext(ctx)
}
