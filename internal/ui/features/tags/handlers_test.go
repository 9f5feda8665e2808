package tags

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkdeck-io/checkdeck/internal/ui/features"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

func newHandlers(f *features.TestFixture) *Handlers {
	return NewHandlers(f.Store, f.Notifier)
}

func TestCreateAndList(t *testing.T) {
	f := features.SetupTestFixture(t)
	h := newHandlers(f)

	body := bytes.NewBufferString(`{"name": "nightly", "color": "#00ff00"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/tags", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created core.Tag
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "nightly", created.Name)
	assert.Equal(t, "#00ff00", created.Color)

	req = httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec = httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var list []*core.Tag
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestCreate_MissingName(t *testing.T) {
	f := features.SetupTestFixture(t)
	h := newHandlers(f)

	req := httptest.NewRequest(http.MethodPost, "/api/tags", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete_RemovesAssignments(t *testing.T) {
	f := features.SetupTestFixture(t)
	h := newHandlers(f)
	ctx := context.Background()

	tag, err := f.Store.CreateTag(ctx, "nightly", "#00ff00")
	require.NoError(t, err)
	suite := f.CreateSuite(t, "Smoke Tests")
	require.NoError(t, f.Store.SetSuiteTags(ctx, suite.ID, []string{tag.ID}))

	req := httptest.NewRequest(http.MethodDelete, "/api/tags/"+tag.ID, nil)
	req = features.RequestWithPathParam(req, "id", tag.ID)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	details, err := f.Store.GetSuite(ctx, suite.ID)
	require.NoError(t, err)
	assert.Empty(t, details.Tags)
}
