package driving

import (
	"context"

	"github.com/refscore/refscore/internal/core/domain"
)

// RunHistoryService exposes the run ledger to external actors.
type RunHistoryService interface {
	// ListRuns returns recorded runs, newest first. A non-positive
	// limit means no limit.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// GetRun returns one recorded run by id.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// DeleteRun removes one recorded run by id.
	DeleteRun(ctx context.Context, id string) error
}
