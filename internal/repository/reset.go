package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetRepository deletes all mutable learner state in one transaction.
type ResetRepository struct {
	db *pgxpool.Pool
}

// NewResetRepository creates a ResetRepository.
func NewResetRepository(db *pgxpool.Pool) *ResetRepository {
	return &ResetRepository{db: db}
}

// ResetLearner removes the learner's review states and item statistics.
func (r *ResetRepository) ResetLearner(ctx context.Context, learnerID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM review_states WHERE learner_id = $1`, learnerID); err != nil {
		return fmt.Errorf("delete review states: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM item_stats WHERE learner_id = $1`, learnerID); err != nil {
		return fmt.Errorf("delete item stats: %w", err)
	}

	return tx.Commit(ctx)
}
