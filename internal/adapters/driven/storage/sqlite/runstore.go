package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/refscore/refscore/internal/core/domain"
	"github.com/refscore/refscore/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// runColumns is the select list shared by GetRun and ListRuns.
const runColumns = `id, started_at, finished_at, reference_path, report_path,
	models, pages, rows_written, metrics, threshold, semantic`

// SaveRun stores or updates a run entry.
func (s *runStore) SaveRun(ctx context.Context, run domain.Run) error {
	modelsJSON, err := json.Marshal(run.Models)
	if err != nil {
		return fmt.Errorf("marshalling models: %w", err)
	}
	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return fmt.Errorf("marshalling metrics: %w", err)
	}

	semantic := 0
	if run.Semantic {
		semantic = 1
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, reference_path, report_path,
			models, pages, rows_written, metrics, threshold, semantic)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			reference_path = excluded.reference_path,
			report_path = excluded.report_path,
			models = excluded.models,
			pages = excluded.pages,
			rows_written = excluded.rows_written,
			metrics = excluded.metrics,
			threshold = excluded.threshold,
			semantic = excluded.semantic
	`, run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.ReferencePath, run.ReportPath, string(modelsJSON),
		run.Pages, run.RowsWritten, string(metricsJSON), run.Threshold, semantic)

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// GetRun retrieves one run by id.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// ListRuns retrieves runs, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes one run by id.
func (s *runStore) DeleteRun(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	return nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one runs row.
func scanRun(row scanner) (*domain.Run, error) {
	var run domain.Run
	var startedAt, finishedAt, modelsJSON, metricsJSON string
	var semantic int

	if err := row.Scan(&run.ID, &startedAt, &finishedAt,
		&run.ReferencePath, &run.ReportPath, &modelsJSON,
		&run.Pages, &run.RowsWritten, &metricsJSON,
		&run.Threshold, &semantic); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if run.FinishedAt, err = parseTime(finishedAt); err != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", err)
	}
	if err := json.Unmarshal([]byte(modelsJSON), &run.Models); err != nil {
		return nil, fmt.Errorf("unmarshaling models: %w", err)
	}
	if err := json.Unmarshal([]byte(metricsJSON), &run.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshaling metrics: %w", err)
	}
	run.Semantic = semantic != 0

	return &run, nil
}

// timeLayout is RFC3339 UTC with a fixed-width fractional second, so
// the stored strings sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime renders timestamps in the stored RFC3339 UTC form.
// Sub-second precision is kept so durations survive a round trip.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
