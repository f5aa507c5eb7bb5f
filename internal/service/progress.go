package service

import (
	"context"
	"fmt"
	"time"
)

// matureIntervalDays is the interval at which an item counts as learned.
const matureIntervalDays = 21

// ProgressSummary aggregates a learner's standing across the corpus.
type ProgressSummary struct {
	TotalItems int
	Learned    int // review interval has reached maturity
	InProgress int // graded at least once, not yet mature
	NotStarted int
	DueNow     int
	Accuracy   float64 // overall correct/attempts ratio, 0 when unattempted
}

// ProgressService computes learner progress summaries from review states
// and item statistics.
type ProgressService struct {
	itemRepo  ItemRepository
	stateRepo ReviewStateRepository
	statRepo  ItemStatRepository
}

// NewProgressService creates a ProgressService.
func NewProgressService(itemRepo ItemRepository, stateRepo ReviewStateRepository, statRepo ItemStatRepository) *ProgressService {
	return &ProgressService{
		itemRepo:  itemRepo,
		stateRepo: stateRepo,
		statRepo:  statRepo,
	}
}

// Summary loads the learner's full state and derives the progress
// counters shown by the /progress command.
func (s *ProgressService) Summary(ctx context.Context, learnerID int64, now time.Time) (*ProgressSummary, error) {
	items, err := s.itemRepo.GetAllFlashcards(ctx)
	if err != nil {
		return nil, fmt.Errorf("get flashcards: %w", err)
	}

	states, err := s.stateRepo.GetAllByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("get review states: %w", err)
	}

	stats, err := s.statRepo.GetAllByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("get item stats: %w", err)
	}

	summary := &ProgressSummary{TotalItems: len(items)}

	for _, item := range items {
		state, ok := states[item.ID]
		if !ok {
			summary.NotStarted++
			continue
		}
		if state.IntervalDays >= matureIntervalDays {
			summary.Learned++
		} else {
			summary.InProgress++
		}
		if state.IsDue(now) {
			summary.DueNow++
		}
	}

	var attempts, correct int
	for _, stat := range stats {
		attempts += stat.Attempts
		correct += stat.Correct
	}
	if attempts > 0 {
		summary.Accuracy = float64(correct) / float64(attempts) * 100
	}

	return summary, nil
}
