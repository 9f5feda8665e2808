package templates

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

// createTemplate inserts a template with two flat items for test setup.
func createTemplate(t *testing.T, f *features.TestFixture, name string) *core.Template {
	t.Helper()

	tmpl, err := f.Store.CreateTemplate(context.Background(),
		core.Template{Name: name, Category: "Regression"},
		[]*core.TemplateItem{
			{Title: "Open the app", Priority: core.PriorityHigh, Position: 0},
			{Title: "Log in", Priority: core.PriorityMedium, Position: 1},
		})
	require.NoError(t, err)
	return tmpl
}

func TestList(t *testing.T) {
	f := features.SetupTestFixture(t)
	h := newHandlers(f)
	createTemplate(t, f, "Smoke Template")

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []*core.TemplateDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Smoke Template", got[0].Name)
	assert.Len(t, got[0].Items, 2)
}

func TestGet_NotFound(t *testing.T) {
	f := features.SetupTestFixture(t)
	h := newHandlers(f)

	req := httptest.NewRequest(http.MethodGet, "/api/templates/nope", nil)
	req = features.RequestWithPathParam(req, "id", "nope")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMaterialize(t *testing.T) {
	f := features.SetupTestFixture(t)
	h := newHandlers(f)
	tmpl := createTemplate(t, f, "Smoke Template")

	body := bytes.NewBufferString(`{"name": "Release 2.0 smoke"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/templates/"+tmpl.ID+"/materialize", body)
	req = features.RequestWithPathParam(req, "id", tmpl.ID)
	rec := httptest.NewRecorder()
	h.Materialize(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got createdResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	suite, err := f.Store.GetSuite(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, "Release 2.0 smoke", suite.Name)
	assert.Equal(t, core.SuiteStatusDraft, suite.Status)
	require.Len(t, suite.Items, 2)
	for _, it := range suite.Items {
		assert.Equal(t, core.ItemStatusNotStarted, it.Status)
	}
}

func TestMaterialize_MissingName(t *testing.T) {
	f := features.SetupTestFixture(t)
	h := newHandlers(f)
	tmpl := createTemplate(t, f, "Smoke Template")

	req := httptest.NewRequest(http.MethodPost, "/api/templates/"+tmpl.ID+"/materialize",
		bytes.NewBufferString(`{}`))
	req = features.RequestWithPathParam(req, "id", tmpl.ID)
	rec := httptest.NewRecorder()
	h.Materialize(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	f := features.SetupTestFixture(t)
	h := newHandlers(f)
	tmpl := createTemplate(t, f, "Smoke Template")

	req := httptest.NewRequest(http.MethodDelete, "/api/templates/"+tmpl.ID, nil)
	req = features.RequestWithPathParam(req, "id", tmpl.ID)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err := f.Store.GetTemplate(context.Background(), tmpl.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
