package driven

import (
	"context"

	"github.com/refscore/refscore/internal/core/domain"
)

// ReportStore persists score records as a report table.
//
// Merging is the caller's concern (domain.MergeRecords); the store reads
// and replaces whole tables. Writes are atomic full-file replacements,
// never row-by-row appends.
type ReportStore interface {
	// Read returns the report currently persisted at path, in file
	// order. A missing or unparseable report reads as empty, not as an
	// error; unknown columns are dropped and missing ones read as null.
	Read(ctx context.Context, path string) ([]domain.ScoreRecord, error)

	// Write replaces the report at path with exactly these records.
	// Columns names the metric columns to write, in order, after the
	// identity columns. Returns the row count written.
	Write(ctx context.Context, path string, records []domain.ScoreRecord, columns []string) (int, error)
}
