package service

import (
	"context"
	"time"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

// ItemRepository provides read access to the authored content corpus.
type ItemRepository interface {
	GetByID(_ context.Context, id string) (*entities.Item, error)
	GetAll(_ context.Context) ([]entities.Item, error)
	GetAllFlashcards(_ context.Context) ([]entities.Item, error)
}

// LessonRepository provides read access to authored lessons.
type LessonRepository interface {
	GetByID(_ context.Context, id string) (*entities.LessonSpec, error)
	GetAll(_ context.Context) ([]entities.LessonSpec, error)
}

// ReviewStateRepository persists per-(learner, item) review states.
type ReviewStateRepository interface {
	Get(ctx context.Context, learnerID int64, itemID string) (*entities.ReviewState, error)
	GetAllByLearner(ctx context.Context, learnerID int64) (map[string]entities.ReviewState, error)
	GetDueItems(ctx context.Context, learnerID int64, now time.Time, limit int) ([]string, error)
	CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error)
	Upsert(ctx context.Context, learnerID int64, state entities.ReviewState) error
}

// ItemStatRepository persists per-(learner, item) answer statistics.
type ItemStatRepository interface {
	Get(ctx context.Context, learnerID int64, itemID string) (*entities.ItemStat, error)
	GetAllByLearner(ctx context.Context, learnerID int64) (map[string]*entities.ItemStat, error)
	Upsert(ctx context.Context, learnerID int64, stat *entities.ItemStat) error
}

// LearnerRepository persists learner accounts.
type LearnerRepository interface {
	SaveLearner(ctx context.Context, learner *entities.Learner) error
	LearnerExists(ctx context.Context, learnerID int64) (bool, error)
}

// ResetRepository wipes all mutable state for one learner.
type ResetRepository interface {
	ResetLearner(ctx context.Context, learnerID int64) error
}
