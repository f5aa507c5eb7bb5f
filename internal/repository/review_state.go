package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

var ErrReviewStateNotFound = errors.New("review state not found")

// ReviewStateRepository stores spaced-repetition state per
// (learner, item) pair.
type ReviewStateRepository struct {
	db *pgxpool.Pool
}

// NewReviewStateRepository creates a ReviewStateRepository.
func NewReviewStateRepository(db *pgxpool.Pool) *ReviewStateRepository {
	return &ReviewStateRepository{db: db}
}

// Upsert creates or updates a review state record.
func (r *ReviewStateRepository) Upsert(ctx context.Context, learnerID int64, state entities.ReviewState) error {
	query := `
		INSERT INTO review_states (learner_id, item_id, interval_days, ease_factor, repetitions, due)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (learner_id, item_id)
		DO UPDATE SET
			interval_days = excluded.interval_days,
			ease_factor = excluded.ease_factor,
			repetitions = excluded.repetitions,
			due = excluded.due
	`

	_, err := r.db.Exec(
		ctx, query,
		learnerID,
		state.ItemID,
		state.IntervalDays,
		state.EaseFactor,
		state.Repetitions,
		state.Due,
	)
	if err != nil {
		return fmt.Errorf("upsert review state: %w", err)
	}

	return nil
}

// Get retrieves one review state. Returns ErrReviewStateNotFound if the
// item has never been graded.
func (r *ReviewStateRepository) Get(ctx context.Context, learnerID int64, itemID string) (*entities.ReviewState, error) {
	query := `
		SELECT item_id, interval_days, ease_factor, repetitions, due
		FROM review_states
		WHERE learner_id = $1 AND item_id = $2
	`

	var state entities.ReviewState
	err := r.db.QueryRow(ctx, query, learnerID, itemID).Scan(
		&state.ItemID,
		&state.IntervalDays,
		&state.EaseFactor,
		&state.Repetitions,
		&state.Due,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewStateNotFound
		}

		return nil, fmt.Errorf("get review state: %w", err)
	}

	return &state, nil
}

// GetAllByLearner loads every review state for a learner into a map
// keyed by item id, for one unit of work.
func (r *ReviewStateRepository) GetAllByLearner(ctx context.Context, learnerID int64) (map[string]entities.ReviewState, error) {
	query := `
		SELECT item_id, interval_days, ease_factor, repetitions, due
		FROM review_states
		WHERE learner_id = $1
	`

	rows, err := r.db.Query(ctx, query, learnerID)
	if err != nil {
		return nil, fmt.Errorf("get review states: %w", err)
	}
	defer rows.Close()

	states := make(map[string]entities.ReviewState)
	for rows.Next() {
		var state entities.ReviewState
		err = rows.Scan(
			&state.ItemID,
			&state.IntervalDays,
			&state.EaseFactor,
			&state.Repetitions,
			&state.Due,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review state: %w", err)
		}
		states[state.ItemID] = state
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review states: %w", err)
	}

	return states, nil
}

// GetDueItems returns up to limit item ids due at now, soonest first.
func (r *ReviewStateRepository) GetDueItems(ctx context.Context, learnerID int64, now time.Time, limit int) ([]string, error) {
	query := `
		SELECT item_id
		FROM review_states
		WHERE learner_id = $1 AND due <= $2
		ORDER BY due ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, learnerID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("get due items: %w", err)
	}
	defer rows.Close()

	itemIDs := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan due item: %w", err)
		}
		itemIDs = append(itemIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate due items: %w", err)
	}

	return itemIDs, nil
}

// CountDue reports how many reviews are waiting at now.
func (r *ReviewStateRepository) CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error) {
	query := "SELECT COUNT(*) FROM review_states WHERE learner_id = $1 AND due <= $2"

	var count int
	err := r.db.QueryRow(ctx, query, learnerID, now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count due: %w", err)
	}

	return count, nil
}
