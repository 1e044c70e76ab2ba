package driven

import (
	"context"

	"github.com/refscore/refscore/internal/core/domain"
)

// RunStore persists the run ledger.
type RunStore interface {
	// SaveRun stores or updates a run entry.
	SaveRun(ctx context.Context, run domain.Run) error

	// GetRun retrieves one run by id.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns retrieves runs, newest first. A non-positive limit means
	// no limit.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// DeleteRun removes one run by id.
	DeleteRun(ctx context.Context, id string) error
}
