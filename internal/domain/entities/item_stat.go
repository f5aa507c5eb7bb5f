package entities

// ItemStat accumulates per-item answer statistics for one learner.
// Created on the first attempt and mutated only by the statistics
// aggregator. Invariant: Correct <= Attempts.
type ItemStat struct {
	ItemID        string
	Attempts      int
	Correct       int
	AvgResponseMs *int64 // nil until the first timed attempt
}

// NewItemStat creates an empty stat record for an item.
func NewItemStat(itemID string) *ItemStat {
	return &ItemStat{ItemID: itemID}
}

// WeaknessScore is a Laplace-smoothed success rate, strictly between 0
// and 1. Lower means weaker recall and therefore higher review priority;
// an unseen item scores 0.5.
func (s *ItemStat) WeaknessScore() float64 {
	if s == nil {
		return 0.5
	}
	return float64(s.Correct+1) / float64(s.Attempts+2)
}
