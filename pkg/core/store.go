package core

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store lookups when no row matches.
var ErrNotFound = errors.New("not found")

// Store defines the data-access contract against the relational store.
// Every operation is a straightforward filtered query, insert, update or
// delete; implementations must propagate remote errors unchanged (no
// retries) and provide no cross-call transactional guarantees beyond what
// each single method documents.
type Store interface {
	Close() error

	// Suite operations
	ListSuites(ctx context.Context) ([]*SuiteDetails, error)
	GetSuite(ctx context.Context, id string) (*SuiteDetails, error)
	CreateSuite(ctx context.Context, s NewSuite) (*Suite, error)
	UpdateSuite(ctx context.Context, id string, patch SuitePatch) (*Suite, error)
	DeleteSuite(ctx context.Context, id string) error
	// CloneSuite copies a suite and its items under a new name. The clone
	// starts as draft. Item parent references are remapped to the new
	// copies. A failure after the suite row was inserted leaves the new
	// suite orphaned with zero items.
	CloneSuite(ctx context.Context, id, newName string) (string, error)

	// Item operations. ListItems returns items ordered by position
	// ascending; tree building is the caller's concern.
	ListItems(ctx context.Context, suiteID string) ([]*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	CreateItem(ctx context.Context, it NewItem) (*Item, error)
	UpdateItem(ctx context.Context, id string, patch ItemPatch) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	BulkDeleteItems(ctx context.Context, ids []string) error
	BulkUpdateItems(ctx context.Context, ids []string, patch ItemPatch) error

	// Execution lifecycle
	StartExecution(ctx context.Context, suiteID, name string) (*ExecutionDetails, error)
	GetExecution(ctx context.Context, id string) (*ExecutionDetails, error)
	ListExecutions(ctx context.Context) ([]*ExecutionDetails, error)
	ListExecutionsBySuite(ctx context.Context, suiteID string) ([]*ExecutionDetails, error)
	ListExecutionsSince(ctx context.Context, since time.Time) ([]*Execution, error)
	// RecordResult inserts a result row and recomputes the execution's
	// denormalized counters by re-summing all of its results. Duplicate
	// results for the same item double-count.
	RecordResult(ctx context.Context, executionID string, r NewResult) error
	CompleteExecution(ctx context.Context, id string) error

	// Template operations
	ListTemplates(ctx context.Context) ([]*TemplateDetails, error)
	GetTemplate(ctx context.Context, id string) (*TemplateDetails, error)
	CreateTemplate(ctx context.Context, t Template, items []*TemplateItem) (*Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	CreateSuiteFromTemplate(ctx context.Context, templateID, suiteName string) (string, error)
	CreateTemplateFromSuite(ctx context.Context, suiteID, name, category string) (*Template, error)

	// Tag operations
	ListTags(ctx context.Context) ([]*Tag, error)
	CreateTag(ctx context.Context, name, color string) (*Tag, error)
	DeleteTag(ctx context.Context, id string) error
	SetItemTags(ctx context.Context, itemID string, tagIDs []string) error
	SetSuiteTags(ctx context.Context, suiteID string, tagIDs []string) error

	// Folder operations
	ListFolders(ctx context.Context) ([]*Folder, error)
	CreateFolder(ctx context.Context, name string, parentID *string) (*Folder, error)
	DeleteFolder(ctx context.Context, id string) error

	// Counts used by the dashboard and analytics views
	CountSuites(ctx context.Context, status SuiteStatus) (int, error)
	CountItems(ctx context.Context) (int, error)
	CountExecutions(ctx context.Context, status ExecutionStatus) (int, error)
	RecentExecutions(ctx context.Context, limit int) ([]*ExecutionDetails, error)
	ActiveExecutions(ctx context.Context, limit int) ([]*ExecutionDetails, error)
	RecentSuites(ctx context.Context, limit int) ([]*SuiteSummary, error)
	// FailedResults returns all results with status failed, joined with
	// their items, in insertion order.
	FailedResults(ctx context.Context) ([]*ResultDetails, error)
}

// SuiteSummary is a suite with its item and execution counts, as shown
// on the dashboard's recent-suites list.
type SuiteSummary struct {
	Suite
	ItemCount      int `json:"item_count"`
	ExecutionCount int `json:"execution_count"`
}
