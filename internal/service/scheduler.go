package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lingora/lingora-bot/internal/domain/entities"
	"github.com/lingora/lingora-bot/internal/repository"
)

// Rating bounds for a graded review. 0 is a complete blackout, 5 a
// perfect recall; ratings of SuccessThreshold and above count as success.
const (
	MinRating        = 0
	MaxRating        = 5
	SuccessThreshold = 3
)

// ErrInvalidRating is returned when a rating falls outside 0..5.
// Out-of-range ratings are rejected, never clamped: silent clamping
// would hide caller bugs.
var ErrInvalidRating = errors.New("rating out of range")

// ScheduleNext advances a review state after a graded review. It is a
// pure function; the input state is left untouched.
//
// A failed review (rating below SuccessThreshold) resets the repetition
// streak and sends the item back to the front of the queue. The ease
// factor is updated by the same continuous formula on success and
// failure and never drops below entities.MinEaseFactor.
func ScheduleNext(state entities.ReviewState, rating int, now time.Time) (entities.ReviewState, error) {
	if rating < MinRating || rating > MaxRating {
		return entities.ReviewState{}, fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}

	next := state

	q := float64(MaxRating - rating)
	next.EaseFactor = math.Max(entities.MinEaseFactor, state.EaseFactor+0.1-q*(0.08+q*0.02))

	if rating < SuccessThreshold {
		next.Repetitions = 0
		next.IntervalDays = 0
	} else {
		next.Repetitions = state.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 3
		default:
			next.IntervalDays = int(math.Round(float64(state.IntervalDays) * next.EaseFactor))
		}
	}

	next.Due = now.AddDate(0, 0, next.IntervalDays)

	return next, nil
}

// ReviewService applies graded reviews to persisted review states.
type ReviewService struct {
	stateRepo ReviewStateRepository
}

// NewReviewService creates a ReviewService.
func NewReviewService(stateRepo ReviewStateRepository) *ReviewService {
	return &ReviewService{stateRepo: stateRepo}
}

// RecordReview grades one item for a learner, creating the review state
// with defaults on the first grade.
func (s *ReviewService) RecordReview(ctx context.Context, learnerID int64, itemID string, rating int, now time.Time) (entities.ReviewState, error) {
	state, err := s.stateRepo.Get(ctx, learnerID, itemID)
	if err != nil && !errors.Is(err, repository.ErrReviewStateNotFound) {
		return entities.ReviewState{}, fmt.Errorf("get review state: %w", err)
	}

	if state == nil {
		created := entities.NewReviewState(itemID, now)
		state = &created
	}

	next, err := ScheduleNext(*state, rating, now)
	if err != nil {
		return entities.ReviewState{}, err
	}

	if err := s.stateRepo.Upsert(ctx, learnerID, next); err != nil {
		return entities.ReviewState{}, fmt.Errorf("upsert review state: %w", err)
	}

	return next, nil
}

// DueItems returns up to limit item ids whose review is due at now,
// soonest first.
func (s *ReviewService) DueItems(ctx context.Context, learnerID int64, now time.Time, limit int) ([]string, error) {
	return s.stateRepo.GetDueItems(ctx, learnerID, now, limit)
}

// CountDue reports how many items are waiting for review at now.
func (s *ReviewService) CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error) {
	return s.stateRepo.CountDue(ctx, learnerID, now)
}
