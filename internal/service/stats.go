package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lingora/lingora-bot/internal/domain/entities"
	"github.com/lingora/lingora-bot/internal/repository"
)

// ErrCorruptStats reports a stat record whose counters violate the
// correct <= attempts invariant. The aggregator is the sole mutator, so
// this should be structurally impossible; the check guards against
// corrupted rows.
var ErrCorruptStats = errors.New("corrupt item stat counters")

// StatsService aggregates per-item answer statistics for a learner.
type StatsService struct {
	statRepo ItemStatRepository
}

// NewStatsService creates a StatsService.
func NewStatsService(statRepo ItemStatRepository) *StatsService {
	return &StatsService{statRepo: statRepo}
}

// RecordItemResult records one answered exercise for an item, creating
// the stat record on the first attempt. elapsedMs <= 0 means the attempt
// was not timed and leaves the running average untouched.
//
// The average response time is an incremental mean and is therefore
// order-sensitive; the attempt and correct totals are plain sums and are
// not.
func (s *StatsService) RecordItemResult(ctx context.Context, learnerID int64, itemID string, wasCorrect bool, elapsedMs int64) (*entities.ItemStat, error) {
	stat, err := s.statRepo.Get(ctx, learnerID, itemID)
	if err != nil && !errors.Is(err, repository.ErrItemStatNotFound) {
		return nil, fmt.Errorf("get item stat: %w", err)
	}

	if stat == nil {
		stat = entities.NewItemStat(itemID)
	}

	if stat.Correct > stat.Attempts {
		return nil, fmt.Errorf("%w: item %s has correct=%d attempts=%d",
			ErrCorruptStats, itemID, stat.Correct, stat.Attempts)
	}

	prevAttempts := stat.Attempts
	stat.Attempts++
	if wasCorrect {
		stat.Correct++
	}

	if elapsedMs > 0 {
		if stat.AvgResponseMs == nil {
			avg := elapsedMs
			stat.AvgResponseMs = &avg
		} else {
			avg := int64(math.Round(float64(*stat.AvgResponseMs*int64(prevAttempts)+elapsedMs) / float64(stat.Attempts)))
			stat.AvgResponseMs = &avg
		}
	}

	if err := s.statRepo.Upsert(ctx, learnerID, stat); err != nil {
		return nil, fmt.Errorf("upsert item stat: %w", err)
	}

	return stat, nil
}

// GetAllByLearner loads the learner's full stat map for one unit of work.
func (s *StatsService) GetAllByLearner(ctx context.Context, learnerID int64) (map[string]*entities.ItemStat, error) {
	return s.statRepo.GetAllByLearner(ctx, learnerID)
}
