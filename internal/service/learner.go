package service

import (
	"context"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

// LearnerService registers learners on first contact.
type LearnerService struct {
	repository LearnerRepository
}

// NewLearnerService creates a LearnerService.
func NewLearnerService(repository LearnerRepository) *LearnerService {
	return &LearnerService{repository: repository}
}

// EnsureLearner creates the learner record if it does not exist yet.
func (s *LearnerService) EnsureLearner(ctx context.Context, learnerID, chatID int64) error {
	learner := entities.NewLearner(learnerID, chatID)

	exists, err := s.repository.LearnerExists(ctx, learner.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.repository.SaveLearner(ctx, learner)
}
