// Package repository contains data access for the content corpus and
// the learner-state store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

var ErrItemNotFound = errors.New("item not found")

// ItemRepository provides access to the authored vocabulary corpus.
// Loaded once from a JSON file at startup; immutable afterwards.
type ItemRepository struct {
	items []entities.Item
	byID  map[string]int
}

// NewItemRepository loads the corpus from the given JSON file.
func NewItemRepository(path string) (*ItemRepository, error) {
	items, err := loadItems(path)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(items))
	for i, item := range items {
		byID[item.ID] = i
	}

	return &ItemRepository{
		items: items,
		byID:  byID,
	}, nil
}

// GetByID retrieves an item by its id.
func (r *ItemRepository) GetByID(_ context.Context, id string) (*entities.Item, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	item := r.items[i]
	return &item, nil
}

// GetAll retrieves every corpus item.
func (r *ItemRepository) GetAll(_ context.Context) ([]entities.Item, error) {
	return r.items, nil
}

// GetAllFlashcards retrieves the flashcard-typed items, the only ones
// participating in scheduling and session ranking.
func (r *ItemRepository) GetAllFlashcards(_ context.Context) ([]entities.Item, error) {
	flashcards := make([]entities.Item, 0, len(r.items))
	for _, item := range r.items {
		if item.IsFlashcard() {
			flashcards = append(flashcards, item)
		}
	}
	return flashcards, nil
}

func loadItems(path string) ([]entities.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Items []entities.Item `json:"items"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items JSON: %w", err)
	}

	if len(wrapper.Items) == 0 {
		return nil, fmt.Errorf("items file %s contains no items", path)
	}

	seen := make(map[string]struct{}, len(wrapper.Items))
	for _, item := range wrapper.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("items file %s contains an item without id", path)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("items file %s contains duplicate id %s", path, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	return wrapper.Items, nil
}
