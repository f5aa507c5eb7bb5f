package service

import (
	"context"
	"fmt"
)

// ResetService wipes a learner's review states and statistics. This is
// the only path that deletes review states.
type ResetService struct {
	resetRepo ResetRepository
}

// NewResetService creates a ResetService.
func NewResetService(resetRepo ResetRepository) *ResetService {
	return &ResetService{resetRepo: resetRepo}
}

// ResetLearner deletes all mutable state for the learner.
func (s *ResetService) ResetLearner(ctx context.Context, learnerID int64) error {
	if err := s.resetRepo.ResetLearner(ctx, learnerID); err != nil {
		return fmt.Errorf("reset learner: %w", err)
	}
	return nil
}
