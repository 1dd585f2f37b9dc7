// Package state persists lint run history in SQLite.
//
// Every recorded run stores the searched root, the number of documents, the
// total mismatch count and the individual findings, so that the history
// command can show how the mismatch count evolves.
package state

import (
	"context"
	"time"

	"github.com/leapstack-labs/svclint/pkg/lint"
)

// RunStatus is the outcome of a recorded run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run is a recorded lint run.
type Run struct {
	ID          string     `json:"id"`
	Root        string     `json:"root"`
	Files       int        `json:"files"`
	Total       int        `json:"total"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Store is the run history persistence contract.
type Store interface {
	CreateRun(ctx context.Context, root string, files int) (*Run, error)
	RecordFindings(ctx context.Context, runID string, findings []lint.Finding) error
	CompleteRun(ctx context.Context, runID string, total int) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	GetFindings(ctx context.Context, runID string) ([]lint.Finding, error)
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
