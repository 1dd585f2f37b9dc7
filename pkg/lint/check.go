package lint

import (
	"fmt"

	"github.com/leapstack-labs/svclint/pkg/naming"
)

// Finding is a service whose declared identifier differs from the derived one.
type Finding struct {
	SourceFile string `json:"file"`
	Line       int    `json:"line,omitempty"`
	Type       string `json:"type"`
	Declared   string `json:"declared"`
	Derived    string `json:"derived"`
}

// Message returns the human-readable description of the mismatch.
func (f Finding) Message() string {
	return fmt.Sprintf("type %s should have identifier %q but has %q", f.Type, f.Derived, f.Declared)
}

// SkipReason tells why a record was not checked.
type SkipReason string

// Skip reasons, in the order they are tested.
const (
	SkipPrivate       SkipReason = "private"
	SkipExempt        SkipReason = "exempt"
	SkipException     SkipReason = "exception"
	SkipNotApplicable SkipReason = "not_applicable"
)

// FileResult holds the outcome for one source file.
type FileResult struct {
	Path     string             `json:"path"`
	Checked  int                `json:"checked"`
	Skipped  map[SkipReason]int `json:"skipped,omitempty"`
	Findings []Finding          `json:"findings,omitempty"`
}

// Count returns the number of findings in the file.
func (f *FileResult) Count() int {
	if f == nil {
		return 0
	}
	return len(f.Findings)
}

// OK reports whether the file has no findings.
func (f *FileResult) OK() bool {
	return f.Count() == 0
}

// Report is the result of a Check pass. Files are ordered by the first
// record seen from each file; findings keep record order.
type Report struct {
	Files []*FileResult `json:"files"`
	Total int           `json:"total"`

	index map[string]*FileResult
}

// File returns the result for path, or nil if no record came from it.
func (r *Report) File(path string) *FileResult {
	if r == nil || r.index == nil {
		return nil
	}
	return r.index[path]
}

// Findings returns all findings across files in report order.
func (r *Report) Findings() []Finding {
	if r == nil {
		return nil
	}
	out := make([]Finding, 0, r.Total)
	for _, f := range r.Files {
		out = append(out, f.Findings...)
	}
	return out
}

func (r *Report) file(path string) *FileResult {
	if f, ok := r.index[path]; ok {
		return f
	}
	f := &FileResult{Path: path}
	r.index[path] = f
	r.Files = append(r.Files, f)
	return f
}

// Classify decides whether r is skipped and, if not, returns the derived
// identifier. ok is false when r is skipped; a mismatch is derived != r.Identifier.
func Classify(r ServiceRecord, rules *naming.RuleTables, exempt *ExemptionSet) (derived string, reason SkipReason, ok bool) {
	switch {
	case rules.IsPrivate(r.Identifier):
		return "", SkipPrivate, false
	case exempt.Contains(r.Type):
		return "", SkipExempt, false
	case rules.IsException(r.Identifier):
		return "", SkipException, false
	}

	id, applicable := naming.Derive(r.Type, rules)
	if !applicable {
		return "", SkipNotApplicable, false
	}
	return id, "", true
}

// Check classifies every record against the rule tables and the exemption
// set and collects the mismatches.
func Check(records []ServiceRecord, rules *naming.RuleTables, exempt *ExemptionSet) *Report {
	report := &Report{index: make(map[string]*FileResult)}

	for _, r := range records {
		f := report.file(r.SourceFile)

		derived, reason, ok := Classify(r, rules, exempt)
		if !ok {
			if f.Skipped == nil {
				f.Skipped = make(map[SkipReason]int)
			}
			f.Skipped[reason]++
			continue
		}

		f.Checked++
		if derived == r.Identifier {
			continue
		}
		f.Findings = append(f.Findings, Finding{
			SourceFile: r.SourceFile,
			Line:       r.Line,
			Type:       r.Type.String(),
			Declared:   r.Identifier,
			Derived:    derived,
		})
		report.Total++
	}

	return report
}

// Run executes both passes: the exemption set is fully built from the whole
// corpus (seeded with rules.SharedTypes) before any record is checked.
func Run(records []ServiceRecord, rules *naming.RuleTables) (*Report, *ExemptionSet) {
	var seed []naming.TypeName
	for _, s := range rules.SharedTypes {
		if t, err := naming.ParseTypeName(s); err == nil {
			seed = append(seed, t)
		}
	}

	exempt := DetectConflicts(records, seed...)
	return Check(records, rules, exempt), exempt
}
