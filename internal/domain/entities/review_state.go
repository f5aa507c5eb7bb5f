package entities

import "time"

const (
	// MinEaseFactor is the floor below which the ease factor never drops.
	MinEaseFactor = 1.3

	// DefaultEaseFactor seeds newly created review states.
	DefaultEaseFactor = 2.5
)

// ReviewState holds the spaced-repetition parameters for one
// (learner, item) pair. It is created lazily the first time a review is
// graded and mutated only by the scheduler; a full learner reset is the
// only deletion path.
type ReviewState struct {
	ItemID       string
	IntervalDays int     // days until the next review, 0 while relearning
	EaseFactor   float64 // interval growth multiplier, >= MinEaseFactor
	Repetitions  int     // consecutive successful reviews
	Due          time.Time
}

// NewReviewState returns the default state for an item graded for the
// first time at now.
func NewReviewState(itemID string, now time.Time) ReviewState {
	return ReviewState{
		ItemID:     itemID,
		EaseFactor: DefaultEaseFactor,
		Due:        now,
	}
}

// IsDue reports whether the item is ready for review at now.
// The boundary is inclusive: a state is due at exactly its Due time.
func (s ReviewState) IsDue(now time.Time) bool {
	return !s.Due.After(now)
}
