package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDocument indicates a document whose structure failed
	// validation. Candidates degrade to null-scored rows; a reference
	// with this error aborts the run.
	ErrInvalidDocument = errors.New("invalid document structure")

	// ErrScorerUnavailable indicates the semantic scorer is not
	// configured or failed its startup probe. The semantic metric
	// family is disabled without it; lexical metrics are unaffected.
	ErrScorerUnavailable = errors.New("semantic scorer unavailable")
)
