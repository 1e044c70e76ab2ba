package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"

	"github.com/refscore/refscore/internal/core/domain"
	"github.com/refscore/refscore/internal/core/ports/driven"
	"github.com/refscore/refscore/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ReportStore = (*Store)(nil)

// identityColumns lead every report, before the metric columns.
var identityColumns = []string{"source", "page_title", "model", "json_valid"}

// Store reads and writes CSV score reports.
type Store struct{}

// NewStore creates a new CSV report store.
func NewStore() *Store {
	return &Store{}
}

// Read returns the records persisted at path, in file order. A missing
// or unparseable file reads as empty.
func (s *Store) Read(ctx context.Context, path string) ([]domain.ScoreRecord, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		logger.Warn("Existing report %s is not parseable CSV, replacing it: %v", path, err)
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}

	records := make([]domain.ScoreRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(column string) (string, bool) {
			i, ok := index[column]
			if !ok || i >= len(row) {
				return "", false
			}
			return row[i], true
		}

		var rec domain.ScoreRecord
		rec.Source, _ = cell("source")
		rec.PageTitle, _ = cell("page_title")
		rec.Model, _ = cell("model")
		if v, ok := cell("json_valid"); ok {
			rec.Valid, _ = strconv.ParseBool(v)
		}
		if v, ok := cell("levenshtein"); ok {
			rec.Levenshtein = parseIntCell(v)
		}
		if v, ok := cell("rouge_l"); ok {
			rec.RougeL = parseFloatCell(v)
		}
		if v, ok := cell("bleu"); ok {
			rec.Bleu = parseFloatCell(v)
		}
		if v, ok := cell("semantic"); ok {
			rec.Semantic = parseFloatCell(v)
		}
		if v, ok := cell("semantic_matched"); ok {
			rec.SemanticMatched = parseBoolCell(v)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Write replaces the report at path with exactly these records and the
// given metric column layout. The new table is staged in memory and
// swapped in with a temp-file rename, so readers never observe a partial
// report.
func (s *Store) Write(ctx context.Context, path string, records []domain.ScoreRecord, columns []string) (int, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := make([]string, 0, len(identityColumns)+len(columns))
	header = append(header, identityColumns...)
	header = append(header, columns...)
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := make([]string, 0, len(header))
		row = append(row,
			rec.Source,
			rec.PageTitle,
			rec.Model,
			strconv.FormatBool(rec.Valid),
		)
		for _, column := range columns {
			row = append(row, metricCell(rec, column))
		}
		if err := writer.Write(row); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return 0, fmt.Errorf("replace report: %w", err)
	}
	return len(records), nil
}

// metricCell renders one metric column for a record. Nulls render as
// empty cells.
func metricCell(rec domain.ScoreRecord, column string) string {
	switch column {
	case "levenshtein":
		if rec.Levenshtein != nil {
			return strconv.Itoa(*rec.Levenshtein)
		}
	case "rouge_l":
		if rec.RougeL != nil {
			return formatFloat(*rec.RougeL)
		}
	case "bleu":
		if rec.Bleu != nil {
			return formatFloat(*rec.Bleu)
		}
	case "semantic":
		if rec.Semantic != nil {
			return formatFloat(*rec.Semantic)
		}
	case "semantic_matched":
		if rec.SemanticMatched != nil {
			return strconv.FormatBool(*rec.SemanticMatched)
		}
	}
	return ""
}

// formatFloat renders a score with the minimal digits that round-trip,
// so read-modify-write cycles keep untouched cells byte-stable.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseIntCell(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatCell(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseBoolCell(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}
