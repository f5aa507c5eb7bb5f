package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

// LearnerRepository provides access to learner accounts.
type LearnerRepository struct {
	db *pgxpool.Pool
}

// NewLearnerRepository creates a LearnerRepository.
func NewLearnerRepository(db *pgxpool.Pool) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// SaveLearner inserts a new learner and fills the database-assigned
// fields on the passed entity.
func (r *LearnerRepository) SaveLearner(ctx context.Context, learner *entities.Learner) error {
	query := `
		INSERT INTO learners (id, chat_id)
		VALUES ($1, $2)
		RETURNING is_active, created_at
	`
	err := r.db.QueryRow(ctx, query, learner.ID, learner.ChatID).Scan(&learner.IsActive, &learner.CreatedAt)
	if err != nil {
		return fmt.Errorf("save learner: %w", err)
	}

	return nil
}

// LearnerExists checks whether a learner is already registered.
func (r *LearnerRepository) LearnerExists(ctx context.Context, learnerID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM learners WHERE id = $1)"

	var exists bool
	err := r.db.QueryRow(ctx, query, learnerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check learner existence: %w", err)
	}

	return exists, nil
}
