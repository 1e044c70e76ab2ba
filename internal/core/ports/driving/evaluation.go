package driving

import (
	"context"

	"github.com/refscore/refscore/internal/core/domain"
)

// EvaluationService scores candidate documents against a reference.
type EvaluationService interface {
	// Evaluate runs one scoring pass: loads the reference and candidates,
	// computes the active metrics, merges the report, and records the run.
	// Only an unusable reference or a persistence failure is an error;
	// malformed candidates degrade to invalid rows.
	Evaluate(ctx context.Context, req domain.EvaluationRequest) (*domain.EvaluationResult, error)

	// Inspect validates documents without scoring them.
	Inspect(ctx context.Context, paths []string) ([]domain.Validation, error)
}
