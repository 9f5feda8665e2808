package state

import (
	"context"
	"errors"
	"testing"

	"github.com/checkdeck-io/checkdeck/internal/testutil"
	"github.com/checkdeck-io/checkdeck/pkg/core"
)

func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store := New(testutil.NewTestLogger(t))
	if err := store.Open(DialectSQLite, ":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func createTestSuite(t *testing.T, store *SQLStore, name string) *core.Suite {
	t.Helper()
	suite, err := store.CreateSuite(context.Background(), core.NewSuite{Name: name})
	if err != nil {
		t.Fatalf("failed to create suite: %v", err)
	}
	return suite
}

func createTestItem(t *testing.T, store *SQLStore, suiteID, title string, parentID *string, position int) *core.Item {
	t.Helper()
	item, err := store.CreateItem(context.Background(), core.NewItem{
		SuiteID:  suiteID,
		Title:    title,
		ParentID: parentID,
		Position: position,
	})
	if err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	return item
}

func TestSQLStore_OpenClose(t *testing.T) {
	store := New(nil)

	if err := store.Open(DialectSQLite, ":memory:"); err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestSQLStore_OpenUnknownDialect(t *testing.T) {
	store := New(nil)
	if err := store.Open("oracle", "whatever"); err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestSQLStore_Migrate(t *testing.T) {
	store := setupTestStore(t)

	tables := []string{
		"folders", "test_suites", "checklist_items", "test_executions",
		"execution_results", "templates", "template_items", "tags",
		"suite_tags", "item_tags",
	}
	for _, table := range tables {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		} else {
			rows.Close()
		}
	}
}

// --- Suite tests ---

func TestSQLStore_SuiteCRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Release 2.4")
	if suite.ID == "" {
		t.Error("suite ID should not be empty")
	}
	if suite.Status != core.SuiteStatusDraft {
		t.Errorf("expected status draft, got %q", suite.Status)
	}

	got, err := store.GetSuite(ctx, suite.ID)
	if err != nil {
		t.Fatalf("failed to get suite: %v", err)
	}
	if got.Name != "Release 2.4" {
		t.Errorf("expected name 'Release 2.4', got %q", got.Name)
	}

	newName := "Release 2.5"
	active := core.SuiteStatusActive
	updated, err := store.UpdateSuite(ctx, suite.ID, core.SuitePatch{Name: &newName, Status: &active})
	if err != nil {
		t.Fatalf("failed to update suite: %v", err)
	}
	if updated.Name != "Release 2.5" || updated.Status != core.SuiteStatusActive {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := store.DeleteSuite(ctx, suite.ID); err != nil {
		t.Fatalf("failed to delete suite: %v", err)
	}
	if _, err := store.GetSuite(ctx, suite.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLStore_GetSuiteNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetSuite(context.Background(), "nonexistent-id")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_UpdateSuiteNotFound(t *testing.T) {
	store := setupTestStore(t)

	name := "x"
	_, err := store.UpdateSuite(context.Background(), "nonexistent-id", core.SuitePatch{Name: &name})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_DeleteSuiteCascadesItems(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Cascade")
	createTestItem(t, store, suite.ID, "Item", nil, 0)

	if err := store.DeleteSuite(ctx, suite.ID); err != nil {
		t.Fatalf("failed to delete suite: %v", err)
	}

	count, err := store.CountItems(ctx)
	if err != nil {
		t.Fatalf("failed to count items: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 items after cascade, got %d", count)
	}
}

// --- Item tests ---

func TestSQLStore_ItemCRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Items")
	item := createTestItem(t, store, suite.ID, "Verify login", nil, 0)

	if item.Priority != core.PriorityMedium {
		t.Errorf("expected default priority medium, got %q", item.Priority)
	}
	if item.Status != core.ItemStatusNotStarted {
		t.Errorf("expected default status not_started, got %q", item.Status)
	}

	passed := core.ItemStatusPassed
	notes := "works in staging"
	updated, err := store.UpdateItem(ctx, item.ID, core.ItemPatch{Status: &passed, Notes: &notes})
	if err != nil {
		t.Fatalf("failed to update item: %v", err)
	}
	if updated.Status != core.ItemStatusPassed || updated.Notes != "works in staging" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := store.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("failed to delete item: %v", err)
	}
	if _, err := store.GetItem(ctx, item.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLStore_ListItemsOrderedByPosition(t *testing.T) {
	store := setupTestStore(t)

	suite := createTestSuite(t, store, "Ordering")
	createTestItem(t, store, suite.ID, "third", nil, 2)
	createTestItem(t, store, suite.ID, "first", nil, 0)
	createTestItem(t, store, suite.ID, "second", nil, 1)

	items, err := store.ListItems(context.Background(), suite.ID)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, items[i].Title)
		}
	}
}

func TestSQLStore_BulkItemOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Bulk")
	a := createTestItem(t, store, suite.ID, "a", nil, 0)
	b := createTestItem(t, store, suite.ID, "b", nil, 1)
	c := createTestItem(t, store, suite.ID, "c", nil, 2)

	blocked := core.ItemStatusBlocked
	if err := store.BulkUpdateItems(ctx, []string{a.ID, b.ID}, core.ItemPatch{Status: &blocked}); err != nil {
		t.Fatalf("failed to bulk update: %v", err)
	}
	got, err := store.GetItem(ctx, a.ID)
	if err != nil {
		t.Fatalf("failed to get item: %v", err)
	}
	if got.Status != core.ItemStatusBlocked {
		t.Errorf("expected status blocked, got %q", got.Status)
	}

	if err := store.BulkDeleteItems(ctx, []string{a.ID, c.ID}); err != nil {
		t.Fatalf("failed to bulk delete: %v", err)
	}
	items, err := store.ListItems(ctx, suite.ID)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	if len(items) != 1 || items[0].ID != b.ID {
		t.Errorf("expected only item b to remain, got %d items", len(items))
	}
}

// --- Execution lifecycle tests ---

func TestSQLStore_StartExecutionSnapshotsTotal(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Snapshot")
	for i := 0; i < 5; i++ {
		createTestItem(t, store, suite.ID, "item", nil, i)
	}

	ex, err := store.StartExecution(ctx, suite.ID, "Nightly")
	if err != nil {
		t.Fatalf("failed to start execution: %v", err)
	}
	if ex.TotalItems != 5 {
		t.Errorf("expected total_items 5, got %d", ex.TotalItems)
	}
	if ex.Status != core.ExecutionStatusInProgress {
		t.Errorf("expected status in_progress, got %q", ex.Status)
	}

	// Items added after the start must not change the snapshot.
	createTestItem(t, store, suite.ID, "late", nil, 5)
	got, err := store.GetExecution(ctx, ex.ID)
	if err != nil {
		t.Fatalf("failed to get execution: %v", err)
	}
	if got.TotalItems != 5 {
		t.Errorf("expected total_items to stay 5, got %d", got.TotalItems)
	}
}

func TestSQLStore_StartExecutionDefaultName(t *testing.T) {
	store := setupTestStore(t)

	suite := createTestSuite(t, store, "Unnamed")
	ex, err := store.StartExecution(context.Background(), suite.ID, "")
	if err != nil {
		t.Fatalf("failed to start execution: %v", err)
	}
	if ex.Name == "" {
		t.Error("expected a generated execution name")
	}
}

func TestSQLStore_RecordResultRecomputesCounters(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Counters")
	a := createTestItem(t, store, suite.ID, "a", nil, 0)
	b := createTestItem(t, store, suite.ID, "b", nil, 1)
	c := createTestItem(t, store, suite.ID, "c", nil, 2)

	ex, err := store.StartExecution(ctx, suite.ID, "run")
	if err != nil {
		t.Fatalf("failed to start execution: %v", err)
	}

	results := []core.NewResult{
		{ChecklistItemID: a.ID, Status: core.ResultStatusPassed},
		{ChecklistItemID: b.ID, Status: core.ResultStatusFailed},
		{ChecklistItemID: c.ID, Status: core.ResultStatusSkipped},
	}
	for _, r := range results {
		if err := store.RecordResult(ctx, ex.ID, r); err != nil {
			t.Fatalf("failed to record result: %v", err)
		}
	}

	got, err := store.GetExecution(ctx, ex.ID)
	if err != nil {
		t.Fatalf("failed to get execution: %v", err)
	}
	if got.PassedItems != 1 || got.FailedItems != 1 || got.BlockedItems != 0 {
		t.Errorf("expected counters 1/1/0, got %d/%d/%d",
			got.PassedItems, got.FailedItems, got.BlockedItems)
	}
	if len(got.Results) != 3 {
		t.Errorf("expected 3 result rows, got %d", len(got.Results))
	}
}

func TestSQLStore_RecordResultDuplicateDoubleCounts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Duplicates")
	item := createTestItem(t, store, suite.ID, "flaky", nil, 0)

	ex, err := store.StartExecution(ctx, suite.ID, "run")
	if err != nil {
		t.Fatalf("failed to start execution: %v", err)
	}

	// Two blocked results for the same item both count.
	for i := 0; i < 2; i++ {
		if err := store.RecordResult(ctx, ex.ID, core.NewResult{
			ChecklistItemID: item.ID,
			Status:          core.ResultStatusBlocked,
		}); err != nil {
			t.Fatalf("failed to record result: %v", err)
		}
	}

	got, err := store.GetExecution(ctx, ex.ID)
	if err != nil {
		t.Fatalf("failed to get execution: %v", err)
	}
	if got.BlockedItems != 2 {
		t.Errorf("expected blocked_items 2, got %d", got.BlockedItems)
	}
	if len(got.Results) != 2 {
		t.Errorf("expected 2 result rows, got %d", len(got.Results))
	}
}

func TestSQLStore_CompleteExecutionIdempotentCounters(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Complete")
	item := createTestItem(t, store, suite.ID, "only", nil, 0)

	ex, err := store.StartExecution(ctx, suite.ID, "run")
	if err != nil {
		t.Fatalf("failed to start execution: %v", err)
	}
	if err := store.RecordResult(ctx, ex.ID, core.NewResult{
		ChecklistItemID: item.ID,
		Status:          core.ResultStatusPassed,
	}); err != nil {
		t.Fatalf("failed to record result: %v", err)
	}

	if err := store.CompleteExecution(ctx, ex.ID); err != nil {
		t.Fatalf("failed to complete execution: %v", err)
	}
	first, err := store.GetExecution(ctx, ex.ID)
	if err != nil {
		t.Fatalf("failed to get execution: %v", err)
	}
	if first.Status != core.ExecutionStatusCompleted {
		t.Errorf("expected status completed, got %q", first.Status)
	}
	if first.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}

	// A second completion overwrites the timestamp but leaves counters alone.
	if err := store.CompleteExecution(ctx, ex.ID); err != nil {
		t.Fatalf("failed to complete execution twice: %v", err)
	}
	second, err := store.GetExecution(ctx, ex.ID)
	if err != nil {
		t.Fatalf("failed to get execution: %v", err)
	}
	if second.Status != core.ExecutionStatusCompleted {
		t.Errorf("expected status to remain completed, got %q", second.Status)
	}
	if second.PassedItems != first.PassedItems ||
		second.FailedItems != first.FailedItems ||
		second.BlockedItems != first.BlockedItems ||
		second.TotalItems != first.TotalItems {
		t.Error("expected counters to be unchanged by a repeated completion")
	}
	if second.CompletedAt == nil {
		t.Fatal("expected completed_at to remain set")
	}
	if second.CompletedAt.Before(*first.CompletedAt) {
		t.Error("expected completed_at to be overwritten, not rolled back")
	}
}

func TestSQLStore_CompleteExecutionNotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.CompleteExecution(context.Background(), "nonexistent-id")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_RecordResultUnknownExecution(t *testing.T) {
	store := setupTestStore(t)

	err := store.RecordResult(context.Background(), "nonexistent-id", core.NewResult{
		ChecklistItemID: "also-nonexistent",
		Status:          core.ResultStatusPassed,
	})
	if err == nil {
		t.Error("expected error recording against unknown execution")
	}
}

// --- Clone tests ---

func TestSQLStore_CloneSuiteRemapsParents(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Original")
	parent := createTestItem(t, store, suite.ID, "parent", nil, 0)
	passed := core.ItemStatusPassed
	if _, err := store.UpdateItem(ctx, parent.ID, core.ItemPatch{Status: &passed}); err != nil {
		t.Fatalf("failed to update item: %v", err)
	}
	child := createTestItem(t, store, suite.ID, "child", &parent.ID, 1)

	cloneID, err := store.CloneSuite(ctx, suite.ID, "Copy")
	if err != nil {
		t.Fatalf("failed to clone suite: %v", err)
	}
	if cloneID == suite.ID {
		t.Fatal("clone must have a new ID")
	}

	clone, err := store.GetSuite(ctx, cloneID)
	if err != nil {
		t.Fatalf("failed to get clone: %v", err)
	}
	if clone.Name != "Copy" {
		t.Errorf("expected name 'Copy', got %q", clone.Name)
	}
	if clone.Status != core.SuiteStatusDraft {
		t.Errorf("expected clone status draft, got %q", clone.Status)
	}
	if len(clone.Items) != 2 {
		t.Fatalf("expected 2 cloned items, got %d", len(clone.Items))
	}

	var cloneParent, cloneChild *core.Item
	for _, it := range clone.Items {
		switch it.Title {
		case "parent":
			cloneParent = it
		case "child":
			cloneChild = it
		}
	}
	if cloneParent == nil || cloneChild == nil {
		t.Fatal("missing cloned items")
	}
	if cloneParent.ID == parent.ID {
		t.Error("cloned item must have a new ID")
	}
	if cloneParent.Status != core.ItemStatusNotStarted {
		t.Errorf("expected cloned item status reset to not_started, got %q", cloneParent.Status)
	}
	if cloneChild.ParentID == nil || *cloneChild.ParentID != cloneParent.ID {
		t.Errorf("expected child parent remapped to %s, got %v", cloneParent.ID, cloneChild.ParentID)
	}

	// Clone has no execution history.
	if len(clone.Executions) != 0 {
		t.Errorf("expected clone to have no executions, got %d", len(clone.Executions))
	}

	// Original stays untouched.
	orig, err := store.GetSuite(ctx, suite.ID)
	if err != nil {
		t.Fatalf("failed to get original: %v", err)
	}
	if len(orig.Items) != 2 || orig.Items[0].Status != core.ItemStatusPassed {
		t.Error("expected original items unchanged")
	}
	_ = child
}

// --- Template tests ---

func TestSQLStore_TemplateRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Source")
	parent := createTestItem(t, store, suite.ID, "parent", nil, 0)
	createTestItem(t, store, suite.ID, "child", &parent.ID, 1)

	tmpl, err := store.CreateTemplateFromSuite(ctx, suite.ID, "Smoke", "")
	if err != nil {
		t.Fatalf("failed to create template from suite: %v", err)
	}
	if tmpl.Category != "Custom" {
		t.Errorf("expected default category 'Custom', got %q", tmpl.Category)
	}

	got, err := store.GetTemplate(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("failed to get template: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 template items (hierarchy flattened), got %d", len(got.Items))
	}

	newSuiteID, err := store.CreateSuiteFromTemplate(ctx, tmpl.ID, "From template")
	if err != nil {
		t.Fatalf("failed to create suite from template: %v", err)
	}
	created, err := store.GetSuite(ctx, newSuiteID)
	if err != nil {
		t.Fatalf("failed to get created suite: %v", err)
	}
	if created.Status != core.SuiteStatusDraft {
		t.Errorf("expected new suite status draft, got %q", created.Status)
	}
	if len(created.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(created.Items))
	}
	for _, it := range created.Items {
		if it.ParentID != nil {
			t.Errorf("expected flat items from template, item %q has a parent", it.Title)
		}
		if it.Status != core.ItemStatusNotStarted {
			t.Errorf("expected item status not_started, got %q", it.Status)
		}
	}
}

func TestSQLStore_DeleteTemplate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	tmpl, err := store.CreateTemplate(ctx, core.Template{Name: "Doomed"}, []*core.TemplateItem{
		{Title: "one"},
	})
	if err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	if err := store.DeleteTemplate(ctx, tmpl.ID); err != nil {
		t.Fatalf("failed to delete template: %v", err)
	}
	if _, err := store.GetTemplate(ctx, tmpl.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// --- Tag and folder tests ---

func TestSQLStore_TagAssignments(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Tagged")
	item := createTestItem(t, store, suite.ID, "item", nil, 0)

	regression, err := store.CreateTag(ctx, "regression", "#ff0000")
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	smoke, err := store.CreateTag(ctx, "smoke", "#00ff00")
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	if err := store.SetSuiteTags(ctx, suite.ID, []string{regression.ID, smoke.ID}); err != nil {
		t.Fatalf("failed to set suite tags: %v", err)
	}
	if err := store.SetItemTags(ctx, item.ID, []string{smoke.ID}); err != nil {
		t.Fatalf("failed to set item tags: %v", err)
	}

	sd, err := store.GetSuite(ctx, suite.ID)
	if err != nil {
		t.Fatalf("failed to get suite: %v", err)
	}
	if len(sd.Tags) != 2 {
		t.Errorf("expected 2 suite tags, got %d", len(sd.Tags))
	}
	if len(sd.Items) != 1 || len(sd.Items[0].Tags) != 1 || sd.Items[0].Tags[0].Name != "smoke" {
		t.Errorf("expected item tagged smoke, got %+v", sd.Items[0].Tags)
	}

	// Replacing assignments drops the old set.
	if err := store.SetSuiteTags(ctx, suite.ID, []string{smoke.ID}); err != nil {
		t.Fatalf("failed to replace suite tags: %v", err)
	}
	sd, err = store.GetSuite(ctx, suite.ID)
	if err != nil {
		t.Fatalf("failed to get suite: %v", err)
	}
	if len(sd.Tags) != 1 || sd.Tags[0].Name != "smoke" {
		t.Errorf("expected only smoke tag, got %+v", sd.Tags)
	}

	// Deleting a tag removes it from assignments.
	if err := store.DeleteTag(ctx, smoke.ID); err != nil {
		t.Fatalf("failed to delete tag: %v", err)
	}
	sd, err = store.GetSuite(ctx, suite.ID)
	if err != nil {
		t.Fatalf("failed to get suite: %v", err)
	}
	if len(sd.Tags) != 0 {
		t.Errorf("expected no suite tags after delete, got %d", len(sd.Tags))
	}
}

func TestSQLStore_Folders(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	root, err := store.CreateFolder(ctx, "Web", nil)
	if err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	child, err := store.CreateFolder(ctx, "Checkout", &root.ID)
	if err != nil {
		t.Fatalf("failed to create nested folder: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Errorf("expected parent %s, got %v", root.ID, child.ParentID)
	}

	folders, err := store.ListFolders(ctx)
	if err != nil {
		t.Fatalf("failed to list folders: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders))
	}

	if err := store.DeleteFolder(ctx, child.ID); err != nil {
		t.Fatalf("failed to delete folder: %v", err)
	}
	if err := store.DeleteFolder(ctx, child.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

// --- Dashboard count tests ---

func TestSQLStore_Counts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	s1 := createTestSuite(t, store, "one")
	createTestSuite(t, store, "two")
	createTestItem(t, store, s1.ID, "item", nil, 0)

	active := core.SuiteStatusActive
	if _, err := store.UpdateSuite(ctx, s1.ID, core.SuitePatch{Status: &active}); err != nil {
		t.Fatalf("failed to update suite: %v", err)
	}

	ex, err := store.StartExecution(ctx, s1.ID, "run")
	if err != nil {
		t.Fatalf("failed to start execution: %v", err)
	}

	total, err := store.CountSuites(ctx, "")
	if err != nil || total != 2 {
		t.Errorf("expected 2 suites, got %d (%v)", total, err)
	}
	activeCount, err := store.CountSuites(ctx, core.SuiteStatusActive)
	if err != nil || activeCount != 1 {
		t.Errorf("expected 1 active suite, got %d (%v)", activeCount, err)
	}
	items, err := store.CountItems(ctx)
	if err != nil || items != 1 {
		t.Errorf("expected 1 item, got %d (%v)", items, err)
	}
	running, err := store.CountExecutions(ctx, core.ExecutionStatusInProgress)
	if err != nil || running != 1 {
		t.Errorf("expected 1 in-progress execution, got %d (%v)", running, err)
	}

	recent, err := store.RecentSuites(ctx, 5)
	if err != nil {
		t.Fatalf("failed to list recent suites: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent suites, got %d", len(recent))
	}
	// s1 was updated last, so it sorts first.
	if recent[0].ID != s1.ID || recent[0].ItemCount != 1 || recent[0].ExecutionCount != 1 {
		t.Errorf("unexpected recent suite summary: %+v", recent[0])
	}

	activeRuns, err := store.ActiveExecutions(ctx, 5)
	if err != nil {
		t.Fatalf("failed to list active executions: %v", err)
	}
	if len(activeRuns) != 1 || activeRuns[0].ID != ex.ID {
		t.Errorf("expected the started execution to be active, got %d", len(activeRuns))
	}
}

func TestSQLStore_FailedResults(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	suite := createTestSuite(t, store, "Failures")
	a := createTestItem(t, store, suite.ID, "a", nil, 0)
	b := createTestItem(t, store, suite.ID, "b", nil, 1)

	ex, err := store.StartExecution(ctx, suite.ID, "run")
	if err != nil {
		t.Fatalf("failed to start execution: %v", err)
	}
	for _, r := range []core.NewResult{
		{ChecklistItemID: a.ID, Status: core.ResultStatusFailed},
		{ChecklistItemID: b.ID, Status: core.ResultStatusPassed},
		{ChecklistItemID: a.ID, Status: core.ResultStatusFailed},
	} {
		if err := store.RecordResult(ctx, ex.ID, r); err != nil {
			t.Fatalf("failed to record result: %v", err)
		}
	}

	failed, err := store.FailedResults(ctx)
	if err != nil {
		t.Fatalf("failed to list failed results: %v", err)
	}
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed results, got %d", len(failed))
	}
	for _, fr := range failed {
		if fr.Status != core.ResultStatusFailed {
			t.Errorf("expected status failed, got %q", fr.Status)
		}
		if fr.Item == nil || fr.Item.ID != a.ID {
			t.Errorf("expected failed results joined to item a, got %+v", fr.Item)
		}
	}
}

func TestSQLStore_NotOpenedGuards(t *testing.T) {
	store := New(nil)

	if _, err := store.ListSuites(context.Background()); err == nil {
		t.Error("expected error from unopened store")
	}
	if _, err := store.ListTags(context.Background()); err == nil {
		t.Error("expected error from unopened store")
	}
}
