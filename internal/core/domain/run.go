package domain

import "time"

// Run records one completed evaluation in the local ledger.
type Run struct {
	// ID is the unique run identifier (UUID).
	ID string

	// StartedAt is when the evaluation began.
	StartedAt time.Time

	// FinishedAt is when the evaluation completed.
	FinishedAt time.Time

	// ReferencePath is the reference document the run compared against.
	ReferencePath string

	// ReportPath is the CSV file the run merged into.
	ReportPath string

	// Models lists the candidate names, in input order.
	Models []string

	// Pages is the reference page count.
	Pages int

	// RowsWritten is the total row count of the report after the merge.
	RowsWritten int

	// Metrics lists the active metric columns, in declared order.
	Metrics []string

	// Threshold is the fuzzy-alignment acceptance threshold (0-100).
	Threshold int

	// Semantic reports whether the semantic pass ran.
	Semantic bool
}

// Duration returns the wall-clock time the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
