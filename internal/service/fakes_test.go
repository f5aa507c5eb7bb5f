package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lingora/lingora-bot/internal/domain/entities"
	"github.com/lingora/lingora-bot/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type learnerItemKey struct {
	learnerID int64
	itemID    string
}

type memItemRepo struct {
	items []entities.Item
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entities.Item, error) {
	for _, item := range r.items {
		if item.ID == id {
			it := item
			return &it, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", repository.ErrItemNotFound, id)
}

func (r *memItemRepo) GetAll(_ context.Context) ([]entities.Item, error) {
	return r.items, nil
}

func (r *memItemRepo) GetAllFlashcards(_ context.Context) ([]entities.Item, error) {
	flashcards := make([]entities.Item, 0, len(r.items))
	for _, item := range r.items {
		if item.IsFlashcard() {
			flashcards = append(flashcards, item)
		}
	}
	return flashcards, nil
}

type memLessonRepo struct {
	lessons []entities.LessonSpec
}

func (r *memLessonRepo) GetByID(_ context.Context, id string) (*entities.LessonSpec, error) {
	for _, lesson := range r.lessons {
		if lesson.ID == id {
			l := lesson
			return &l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", repository.ErrLessonNotFound, id)
}

func (r *memLessonRepo) GetAll(_ context.Context) ([]entities.LessonSpec, error) {
	return r.lessons, nil
}

type memStatRepo struct {
	stats map[learnerItemKey]entities.ItemStat
}

func newMemStatRepo() *memStatRepo {
	return &memStatRepo{stats: make(map[learnerItemKey]entities.ItemStat)}
}

func (r *memStatRepo) Get(_ context.Context, learnerID int64, itemID string) (*entities.ItemStat, error) {
	stored, ok := r.stats[learnerItemKey{learnerID, itemID}]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrItemStatNotFound, itemID)
	}
	cp := stored
	if stored.AvgResponseMs != nil {
		avg := *stored.AvgResponseMs
		cp.AvgResponseMs = &avg
	}
	return &cp, nil
}

func (r *memStatRepo) GetAllByLearner(_ context.Context, learnerID int64) (map[string]*entities.ItemStat, error) {
	out := make(map[string]*entities.ItemStat)
	for key, stored := range r.stats {
		if key.learnerID != learnerID {
			continue
		}
		cp := stored
		if stored.AvgResponseMs != nil {
			avg := *stored.AvgResponseMs
			cp.AvgResponseMs = &avg
		}
		out[key.itemID] = &cp
	}
	return out, nil
}

func (r *memStatRepo) Upsert(_ context.Context, learnerID int64, stat *entities.ItemStat) error {
	cp := *stat
	if stat.AvgResponseMs != nil {
		avg := *stat.AvgResponseMs
		cp.AvgResponseMs = &avg
	}
	r.stats[learnerItemKey{learnerID, stat.ItemID}] = cp
	return nil
}

type memStateRepo struct {
	states map[learnerItemKey]entities.ReviewState
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{states: make(map[learnerItemKey]entities.ReviewState)}
}

func (r *memStateRepo) Get(_ context.Context, learnerID int64, itemID string) (*entities.ReviewState, error) {
	state, ok := r.states[learnerItemKey{learnerID, itemID}]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrReviewStateNotFound, itemID)
	}
	cp := state
	return &cp, nil
}

func (r *memStateRepo) GetAllByLearner(_ context.Context, learnerID int64) (map[string]entities.ReviewState, error) {
	out := make(map[string]entities.ReviewState)
	for key, state := range r.states {
		if key.learnerID == learnerID {
			out[key.itemID] = state
		}
	}
	return out, nil
}

func (r *memStateRepo) GetDueItems(_ context.Context, learnerID int64, now time.Time, limit int) ([]string, error) {
	due := make([]entities.ReviewState, 0, len(r.states))
	for key, state := range r.states {
		if key.learnerID == learnerID && state.IsDue(now) {
			due = append(due, state)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].Due.Before(due[j].Due) })

	ids := make([]string, 0, len(due))
	for _, state := range due {
		if len(ids) >= limit {
			break
		}
		ids = append(ids, state.ItemID)
	}
	return ids, nil
}

func (r *memStateRepo) CountDue(_ context.Context, learnerID int64, now time.Time) (int, error) {
	count := 0
	for key, state := range r.states {
		if key.learnerID == learnerID && state.IsDue(now) {
			count++
		}
	}
	return count, nil
}

func (r *memStateRepo) Upsert(_ context.Context, learnerID int64, state entities.ReviewState) error {
	r.states[learnerItemKey{learnerID, state.ItemID}] = state
	return nil
}
