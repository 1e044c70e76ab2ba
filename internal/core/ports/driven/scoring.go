package driven

import "context"

// SemanticScorer scores a candidate text against a reference text using
// an external model. This is an optional service - when nil, the
// semantic metric family is disabled for the whole run.
//
// Implementations may include:
//   - A BLEURT scoring server over HTTP
//   - Any service exposing a compatible (reference, candidate) -> score
//     endpoint
type SemanticScorer interface {
	// Score returns the model score for candidate against reference.
	// Scores are model-defined; they are recorded, not interpreted.
	Score(ctx context.Context, reference, candidate string) (float64, error)

	// Ping validates the service is reachable with a lightweight request.
	// This is used at startup to decide whether the semantic pass runs.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
