package tabular

// problems.go implements the problems collector: an append-only,
// insertion-ordered record of every recoverable issue in one parse
// operation. A clean parse yields an empty but present collector, so
// callers can always check problems.Len() == 0 uniformly.

import (
	"fmt"

	"github.com/google/uuid"
)

// ProblemKind classifies a recoverable issue.
type ProblemKind int

const (
	// ProblemRaggedRow: a data row's field count differed from the header.
	// Row is the repaired row's index in the resulting table, or -1 for a
	// short row dropped under RaggedTruncate.
	ProblemRaggedRow ProblemKind = iota

	// ProblemCellParse: a cell did not match its column's type grammar;
	// the cell was stored as typed-missing.
	ProblemCellParse

	// ProblemAmbiguousInference: every sampled value of a column matched
	// a missing marker, so the column defaulted to character. A larger
	// sample might have decided differently.
	ProblemAmbiguousInference
)

func (k ProblemKind) String() string {
	switch k {
	case ProblemRaggedRow:
		return "ragged row"
	case ProblemCellParse:
		return "cell parse failure"
	case ProblemAmbiguousInference:
		return "ambiguous inference"
	default:
		return "unknown"
	}
}

// Severity ranks how much a problem should worry the caller.
type Severity int

const (
	// SeverityWarning: data was altered or dropped to recover.
	SeverityWarning Severity = iota

	// SeverityAdvisory: nothing was altered; a heuristic limitation is
	// being surfaced.
	SeverityAdvisory
)

// Problem is one immutable recoverable-issue record.
type Problem struct {
	// Row is the 0-based data row index (header and skipped lines
	// excluded), or -1 when the problem is not tied to a row.
	Row int

	// Column is the column name, empty for whole-row problems.
	Column string

	// Raw is the offending raw value (for cell failures) or a short
	// description of what was found.
	Raw string

	// Expected names the type or shape that was expected.
	Expected string

	Reason   string
	Kind     ProblemKind
	Severity Severity
}

func (p Problem) String() string {
	switch {
	case p.Column != "" && p.Row >= 0:
		return fmt.Sprintf("row %d, column %s: %s (got %q, expected %s)",
			p.Row, p.Column, p.Reason, p.Raw, p.Expected)
	case p.Column != "":
		return fmt.Sprintf("column %s: %s", p.Column, p.Reason)
	default:
		return fmt.Sprintf("row %d: %s (got %s, expected %s)",
			p.Row, p.Reason, p.Raw, p.Expected)
	}
}

// Problems collects Problem records for one parse operation. It never
// discards or deduplicates. Not safe for concurrent mutation; a parse
// operation runs on a single goroutine.
type Problems struct {
	id      uuid.UUID
	records []Problem
}

// NewProblems returns an empty collector with a fresh operation ID.
func NewProblems() *Problems {
	return &Problems{id: uuid.New()}
}

// OperationID identifies the parse operation this collector belongs to,
// for correlating log entries.
func (p *Problems) OperationID() uuid.UUID { return p.id }

// Len returns the total number of records.
func (p *Problems) Len() int { return len(p.records) }

// Records returns the records in insertion order. The returned slice is
// a copy; the collector's own records are immutable once added.
func (p *Problems) Records() []Problem {
	out := make([]Problem, len(p.records))
	copy(out, p.records)
	return out
}

// ByColumn returns per-column record counts. Whole-row problems count
// under the empty-string key.
func (p *Problems) ByColumn() map[string]int {
	counts := make(map[string]int)
	for _, rec := range p.records {
		counts[rec.Column]++
	}
	return counts
}

func (p *Problems) add(rec Problem) {
	p.records = append(p.records, rec)
}

func (p *Problems) merge(recs []Problem) {
	p.records = append(p.records, recs...)
}
