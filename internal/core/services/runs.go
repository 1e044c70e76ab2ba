package services

import (
	"context"
	"fmt"

	"github.com/refscore/refscore/internal/core/domain"
	"github.com/refscore/refscore/internal/core/ports/driven"
	"github.com/refscore/refscore/internal/core/ports/driving"
)

// Ensure RunHistoryService implements the interface.
var _ driving.RunHistoryService = (*RunHistoryService)(nil)

// RunHistoryService exposes the run ledger.
type RunHistoryService struct {
	runs driven.RunStore
}

// NewRunHistoryService creates a new run history service.
func NewRunHistoryService(runs driven.RunStore) *RunHistoryService {
	return &RunHistoryService{runs: runs}
}

// ListRuns returns recorded runs, newest first.
func (s *RunHistoryService) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	return s.runs.ListRuns(ctx, limit)
}

// GetRun returns one recorded run by id.
func (s *RunHistoryService) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}
	return s.runs.GetRun(ctx, id)
}

// DeleteRun removes one recorded run by id.
func (s *RunHistoryService) DeleteRun(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}
	return s.runs.DeleteRun(ctx, id)
}
