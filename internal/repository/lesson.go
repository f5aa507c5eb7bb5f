package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

var ErrLessonNotFound = errors.New("lesson not found")

// LessonRepository provides access to authored lessons, loaded once from
// a JSON file at startup.
type LessonRepository struct {
	lessons []entities.LessonSpec
	byID    map[string]int
}

// NewLessonRepository loads lessons from the given JSON file.
func NewLessonRepository(path string) (*LessonRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Lessons []entities.LessonSpec `json:"lessons"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lessons JSON: %w", err)
	}

	byID := make(map[string]int, len(wrapper.Lessons))
	for i, lesson := range wrapper.Lessons {
		if lesson.ID == "" {
			return nil, fmt.Errorf("lessons file %s contains a lesson without id", path)
		}
		byID[lesson.ID] = i
	}

	return &LessonRepository{
		lessons: wrapper.Lessons,
		byID:    byID,
	}, nil
}

// GetByID retrieves a lesson by its id.
func (r *LessonRepository) GetByID(_ context.Context, id string) (*entities.LessonSpec, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}

	lesson := r.lessons[i]
	return &lesson, nil
}

// GetAll retrieves every lesson in authored order.
func (r *LessonRepository) GetAll(_ context.Context) ([]entities.LessonSpec, error) {
	return r.lessons, nil
}
