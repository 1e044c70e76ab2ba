package domain

// RecordKey identifies one report row. The report holds at most one row
// per key; merge enforces the invariant.
type RecordKey struct {
	Source    string
	PageTitle string
	Model     string
}

// ScoreRecord is one scored (source, page title, model) row.
//
// Nil score pointers mean null: unscorable (invalid source) or, for the
// semantic metric, unmatched or failed. SemanticMatched is recorded
// independently of Semantic so null-due-to-unmatched is distinguishable
// from null-due-to-scorer-failure.
type ScoreRecord struct {
	// Source is the reference document name the row belongs to.
	Source string

	// PageTitle is the raw reference page title.
	PageTitle string

	// Model is the candidate generator name.
	Model string

	// Valid reports whether the candidate document passed structure
	// validation. False forces every metric to null.
	Valid bool

	// Levenshtein is the character edit distance, null when unscorable.
	Levenshtein *int

	// RougeL is the ROUGE-L F score in [0,1], null when unscorable.
	RougeL *float64

	// Bleu is the page-level BLEU score in [0,1], null when unscorable.
	Bleu *float64

	// Semantic is the external scorer's similarity, null when the pair
	// was unmatched, the source invalid, or the scorer failed.
	Semantic *float64

	// SemanticMatched reports whether fuzzy title alignment matched the
	// page. Null until the semantic pass has run.
	SemanticMatched *bool
}

// Key returns the merge key for the record.
func (r ScoreRecord) Key() RecordKey {
	return RecordKey{Source: r.Source, PageTitle: r.PageTitle, Model: r.Model}
}

// MergeRecords merges freshly computed rows into an existing report.
//
// Any existing row whose key matches a fresh row is replaced by the fresh
// row; non-matching existing rows are preserved unchanged, in their
// original order, followed by the fresh rows in computation order. The
// result is the key-wise union, never a naive append, so re-running the
// identical computation yields the same row count and values.
func MergeRecords(existing, fresh []ScoreRecord) []ScoreRecord {
	replaced := make(map[RecordKey]struct{}, len(fresh))
	for _, r := range fresh {
		replaced[r.Key()] = struct{}{}
	}

	merged := make([]ScoreRecord, 0, len(existing)+len(fresh))
	for _, r := range existing {
		if _, ok := replaced[r.Key()]; ok {
			continue
		}
		merged = append(merged, r)
	}
	merged = append(merged, fresh...)
	return merged
}
