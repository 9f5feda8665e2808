// Package core defines the CheckDeck domain model: suites, checklist
// items, executions, results, templates, tags and folders, together with
// the Store contract and the pure data-shape transformations (tree
// building, trend and failure aggregation) built on top of them.
package core

import "time"

// SuiteStatus represents the lifecycle status of a test suite.
type SuiteStatus string

// Suite status constants.
const (
	SuiteStatusDraft    SuiteStatus = "draft"
	SuiteStatusActive   SuiteStatus = "active"
	SuiteStatusArchived SuiteStatus = "archived"
)

// ItemStatus represents the standing status of a checklist item.
type ItemStatus string

// Item status constants.
const (
	ItemStatusNotStarted ItemStatus = "not_started"
	ItemStatusInProgress ItemStatus = "in_progress"
	ItemStatusPassed     ItemStatus = "passed"
	ItemStatusFailed     ItemStatus = "failed"
	ItemStatusBlocked    ItemStatus = "blocked"
)

// Priority represents the priority of a checklist item.
type Priority string

// Priority constants.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// ExecutionStatus represents the status of a test execution.
type ExecutionStatus string

// Execution status constants. ExecutionStatusAborted has no producing
// transition in this system; it is only ever set administratively.
const (
	ExecutionStatusInProgress ExecutionStatus = "in_progress"
	ExecutionStatusCompleted  ExecutionStatus = "completed"
	ExecutionStatusAborted    ExecutionStatus = "aborted"
)

// ResultStatus represents the recorded outcome of testing one item.
type ResultStatus string

// Result status constants.
const (
	ResultStatusPassed  ResultStatus = "passed"
	ResultStatusFailed  ResultStatus = "failed"
	ResultStatusBlocked ResultStatus = "blocked"
	ResultStatusSkipped ResultStatus = "skipped"
)

// Folder groups suites. Folders form a tree via ParentID.
type Folder struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ParentID  *string    `json:"parent_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// Suite is a named collection of checklist items representing one
// testing scope.
type Suite struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      SuiteStatus `json:"status"`
	FolderID    *string     `json:"folder_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// SuiteDetails is a suite together with its joined associations.
type SuiteDetails struct {
	Suite
	Folder     *Folder      `json:"folder,omitempty"`
	Items      []*Item      `json:"items,omitempty"`
	Executions []*Execution `json:"executions,omitempty"`
	Tags       []*Tag       `json:"tags,omitempty"`
}

// Item is a single test step, optionally nested under a parent item
// within the same suite.
type Item struct {
	ID             string     `json:"id"`
	SuiteID        string     `json:"suite_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ExpectedResult string     `json:"expected_result"`
	Priority       Priority   `json:"priority"`
	Status         ItemStatus `json:"status"`
	ParentID       *string    `json:"parent_id"`
	Position       int        `json:"position"`
	Notes          string     `json:"notes"`
	Tags           []*Tag     `json:"tags,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ItemNode is an item with its resolved children, as produced by
// BuildItemTree.
type ItemNode struct {
	*Item
	Children []*ItemNode `json:"children"`
}

// Execution is one run-through of a suite's items. The counters are
// denormalized and recomputed after every result write; TotalItems is a
// snapshot taken when the execution starts and is never re-synced.
type Execution struct {
	ID           string          `json:"id"`
	SuiteID      string          `json:"suite_id"`
	Name         string          `json:"name"`
	Status       ExecutionStatus `json:"status"`
	TotalItems   int             `json:"total_items"`
	PassedItems  int             `json:"passed_items"`
	FailedItems  int             `json:"failed_items"`
	BlockedItems int             `json:"blocked_items"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
}

// ExecutionDetails is an execution with its suite and recorded results.
type ExecutionDetails struct {
	Execution
	Suite   *Suite           `json:"suite,omitempty"`
	Results []*ResultDetails `json:"results,omitempty"`
}

// Result is the recorded outcome of testing one item within one
// execution. Multiple results per (execution, item) pair are allowed.
type Result struct {
	ID              string       `json:"id"`
	ExecutionID     string       `json:"execution_id"`
	ChecklistItemID string       `json:"checklist_item_id"`
	Status          ResultStatus `json:"status"`
	Comment         string       `json:"comment"`
	DurationSeconds *int         `json:"duration_seconds"`
	CreatedAt       time.Time    `json:"created_at"`
}

// ResultDetails is a result joined with the item it was recorded for.
type ResultDetails struct {
	Result
	Item *Item `json:"item,omitempty"`
}

// Template is a reusable, suite-shaped blueprint not tied to any
// execution history.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// TemplateItem mirrors a checklist item minus status and hierarchy.
type TemplateItem struct {
	ID             string   `json:"id"`
	TemplateID     string   `json:"template_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ExpectedResult string   `json:"expected_result"`
	Priority       Priority `json:"priority"`
	Position       int      `json:"position"`
}

// TemplateDetails is a template with its items.
type TemplateDetails struct {
	Template
	Items []*TemplateItem `json:"items"`
}

// Tag is a colored label, many-to-many with suites and items.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SuitePatch is a field-level update for a suite. Nil fields are left
// unchanged.
type SuitePatch struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Status      *SuiteStatus `json:"status"`
	FolderID    *string      `json:"folder_id"`
}

// ItemPatch is a field-level update for a checklist item. Nil fields are
// left unchanged.
type ItemPatch struct {
	Title          *string     `json:"title"`
	Description    *string     `json:"description"`
	ExpectedResult *string     `json:"expected_result"`
	Priority       *Priority   `json:"priority"`
	Status         *ItemStatus `json:"status"`
	ParentID       *string     `json:"parent_id"`
	Position       *int        `json:"position"`
	Notes          *string     `json:"notes"`
}

// NewItem carries the caller-supplied fields for item creation.
type NewItem struct {
	SuiteID        string     `json:"suite_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ExpectedResult string     `json:"expected_result"`
	Priority       Priority   `json:"priority"`
	Status         ItemStatus `json:"status"`
	ParentID       *string    `json:"parent_id"`
	Position       int        `json:"position"`
	Notes          string     `json:"notes"`
}

// NewSuite carries the caller-supplied fields for suite creation.
type NewSuite struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      SuiteStatus `json:"status"`
	FolderID    *string     `json:"folder_id"`
}

// NewResult carries the caller-supplied fields for recording a result.
type NewResult struct {
	ChecklistItemID string       `json:"checklist_item_id"`
	Status          ResultStatus `json:"status"`
	Comment         string       `json:"comment"`
	DurationSeconds *int         `json:"duration_seconds"`
}
