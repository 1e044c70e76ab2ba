package domain

import "time"

// Candidate names one model output file to score against the reference.
type Candidate struct {
	// Name is the model name used in report rows. Defaults to the file
	// base name without extension.
	Name string

	// Path is the candidate JSON file.
	Path string
}

// EvaluationRequest describes one scoring run.
type EvaluationRequest struct {
	// ReferencePath is the reference document. Failure to load it, or a
	// reference yielding zero pages, aborts the run.
	ReferencePath string

	// Candidates are the model outputs to score, in input order.
	Candidates []Candidate

	// OutputPath is the report CSV merged into.
	OutputPath string

	// Threshold is the fuzzy-alignment acceptance threshold (0-100).
	Threshold int

	// CaseInsensitive lowercases the lexical comparison form.
	CaseInsensitive bool

	// Rouge enables the ROUGE-L column.
	Rouge bool

	// Bleu enables the BLEU column.
	Bleu bool

	// Semantic requests the semantic pass. It runs only when the scorer
	// capability is also present.
	Semantic bool
}

// Validation is the structural verdict for one input file.
type Validation struct {
	// Name is the source or model name.
	Name string

	// Path is the file validated.
	Path string

	// OK reports whether the structure is usable for scoring.
	OK bool

	// Message names what was expected vs found, or "valid (N page(s))".
	Message string

	// Pages is the parsed page count (zero when invalid).
	Pages int
}

// UnmatchedTitle is one fuzzy-alignment failure: a candidate page title
// that matched no reference title at or above the threshold.
type UnmatchedTitle struct {
	// Key is the candidate's normalised title key.
	Key string

	// BestMatch is the highest-scoring reference key seen, empty when
	// the reference set was empty.
	BestMatch string

	// Score is BestMatch's similarity (0-100).
	Score int
}

// MatchNote records an inexact fuzzy match that was accepted, for
// operator visibility.
type MatchNote struct {
	// Model is the candidate the match belongs to.
	Model string

	// Key is the candidate's normalised title key.
	Key string

	// MatchedTo is the reference key the candidate was aligned to.
	MatchedTo string

	// Score is the similarity of the accepted match (0-100).
	Score int
}

// ModelAlignment is the fuzzy-alignment outcome for one candidate.
type ModelAlignment struct {
	// Model is the candidate name.
	Model string

	// Unmatched lists the candidate titles that found no acceptable
	// reference match.
	Unmatched []UnmatchedTitle
}

// EvaluationResult summarises one completed run for rendering.
type EvaluationResult struct {
	// Reference is the reference file's validation.
	Reference Validation

	// Candidates are the per-model validations, in input order.
	Candidates []Validation

	// MatchNotes are the inexact fuzzy matches that were accepted.
	MatchNotes []MatchNote

	// Alignments are the per-model unmatched reports.
	Alignments []ModelAlignment

	// ReportPath is where the merged report was written.
	ReportPath string

	// RowsWritten is the report's total row count after the merge.
	RowsWritten int

	// Columns is the written column set, in order.
	Columns []string

	// Semantic reports whether the semantic pass ran.
	Semantic bool

	// RunID is the ledger id of the recorded run, empty if recording
	// failed.
	RunID string

	// Elapsed is the wall-clock run time.
	Elapsed time.Duration
}
