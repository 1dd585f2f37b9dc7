package output

import "time"

// LintOutput is the JSON document produced by the lint command.
type LintOutput struct {
	Files       []LintFileResult `json:"files"`
	Conflicts   []LintConflict   `json:"conflicts,omitempty"`
	ExemptTypes []string         `json:"exempt_types,omitempty"`
	Summary     LintSummary      `json:"summary"`
	RunID       string           `json:"run_id,omitempty"`
}

// LintFileResult holds the findings of one document.
type LintFileResult struct {
	Path     string         `json:"path"`
	Checked  int            `json:"checked"`
	Skipped  map[string]int `json:"skipped,omitempty"`
	Findings []LintFinding  `json:"findings"`
}

// LintFinding is a single identifier mismatch.
type LintFinding struct {
	Line     int    `json:"line,omitempty"`
	Type     string `json:"type"`
	Declared string `json:"declared"`
	Derived  string `json:"derived"`
	Message  string `json:"message"`
}

// LintConflict describes a corpus conflict that exempted types.
type LintConflict struct {
	Kind        string   `json:"kind"`
	Identifiers []string `json:"identifiers"`
	Types       []string `json:"types"`
	Files       []string `json:"files,omitempty"`
}

// LintSummary totals a lint run.
type LintSummary struct {
	FilesChecked      int `json:"files_checked"`
	FilesWithFindings int `json:"files_with_findings"`
	Total             int `json:"total"`
}

// DeriveOutput is the JSON document produced by the derive command.
type DeriveOutput struct {
	Type       string   `json:"type"`
	Applicable bool     `json:"applicable"`
	Reason     string   `json:"reason,omitempty"`
	Identifier string   `json:"identifier,omitempty"`
	Prefix     string   `json:"prefix,omitempty"`
	Category   string   `json:"category,omitempty"`
	Path       []string `json:"path,omitempty"`
	Name       string   `json:"name,omitempty"`
}

// RunInfo is one entry of the history command.
type RunInfo struct {
	ID          string     `json:"id"`
	Root        string     `json:"root"`
	Files       int        `json:"files"`
	Total       int        `json:"total"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HistoryOutput is the JSON document produced by the history command.
type HistoryOutput struct {
	Runs     []RunInfo     `json:"runs"`
	Findings []LintFinding `json:"findings,omitempty"`
}
