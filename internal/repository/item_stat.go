package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

var ErrItemStatNotFound = errors.New("item stat not found")

// ItemStatRepository stores per-(learner, item) answer statistics.
type ItemStatRepository struct {
	db *pgxpool.Pool
}

// NewItemStatRepository creates an ItemStatRepository.
func NewItemStatRepository(db *pgxpool.Pool) *ItemStatRepository {
	return &ItemStatRepository{db: db}
}

// Upsert creates or updates a stat record.
func (r *ItemStatRepository) Upsert(ctx context.Context, learnerID int64, stat *entities.ItemStat) error {
	query := `
		INSERT INTO item_stats (learner_id, item_id, attempts, correct, avg_response_ms)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (learner_id, item_id)
		DO UPDATE SET
			attempts = excluded.attempts,
			correct = excluded.correct,
			avg_response_ms = excluded.avg_response_ms
	`

	_, err := r.db.Exec(
		ctx, query,
		learnerID,
		stat.ItemID,
		stat.Attempts,
		stat.Correct,
		stat.AvgResponseMs,
	)
	if err != nil {
		return fmt.Errorf("upsert item stat: %w", err)
	}

	return nil
}

// Get retrieves one stat record. Returns ErrItemStatNotFound if the
// item has never been attempted.
func (r *ItemStatRepository) Get(ctx context.Context, learnerID int64, itemID string) (*entities.ItemStat, error) {
	query := `
		SELECT item_id, attempts, correct, avg_response_ms
		FROM item_stats
		WHERE learner_id = $1 AND item_id = $2
	`

	var stat entities.ItemStat
	err := r.db.QueryRow(ctx, query, learnerID, itemID).Scan(
		&stat.ItemID,
		&stat.Attempts,
		&stat.Correct,
		&stat.AvgResponseMs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemStatNotFound
		}

		return nil, fmt.Errorf("get item stat: %w", err)
	}

	return &stat, nil
}

// GetAllByLearner loads every stat record for a learner into a map
// keyed by item id.
func (r *ItemStatRepository) GetAllByLearner(ctx context.Context, learnerID int64) (map[string]*entities.ItemStat, error) {
	query := `
		SELECT item_id, attempts, correct, avg_response_ms
		FROM item_stats
		WHERE learner_id = $1
	`

	rows, err := r.db.Query(ctx, query, learnerID)
	if err != nil {
		return nil, fmt.Errorf("get item stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*entities.ItemStat)
	for rows.Next() {
		var stat entities.ItemStat
		err = rows.Scan(
			&stat.ItemID,
			&stat.Attempts,
			&stat.Correct,
			&stat.AvgResponseMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item stat: %w", err)
		}
		stats[stat.ItemID] = &stat
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item stats: %w", err)
	}

	return stats, nil
}
