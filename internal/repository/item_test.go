package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

const validItemsJSON = `{
  "items": [
    {"id": "rojo", "term": "rojo", "translation": "red", "type": "flashcard", "categories": ["colors"]},
    {"id": "pan", "term": "el pan", "translation": "the bread", "type": "flashcard", "categories": ["food"]},
    {"id": "dialogo", "term": "hola", "translation": "hello", "type": "dialogue"}
  ]
}`

func TestItemRepositoryLoadsCorpus(t *testing.T) {
	ctx := context.Background()
	repo, err := NewItemRepository(writeTempJSON(t, validItemsJSON))
	if err != nil {
		t.Fatalf("NewItemRepository() error = %v", err)
	}

	item, err := repo.GetByID(ctx, "rojo")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if item.Term != "rojo" || item.Translation != "red" {
		t.Errorf("got %q/%q, want rojo/red", item.Term, item.Translation)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("GetAll() returned %d items, want 3", len(all))
	}

	flashcards, err := repo.GetAllFlashcards(ctx)
	if err != nil {
		t.Fatalf("GetAllFlashcards() error = %v", err)
	}
	if len(flashcards) != 2 {
		t.Errorf("GetAllFlashcards() returned %d items, want 2", len(flashcards))
	}
	for _, item := range flashcards {
		if !item.IsFlashcard() {
			t.Errorf("non-flashcard item %q in flashcard list", item.ID)
		}
	}
}

func TestItemRepositoryGetByIDNotFound(t *testing.T) {
	repo, err := NewItemRepository(writeTempJSON(t, validItemsJSON))
	if err != nil {
		t.Fatalf("NewItemRepository() error = %v", err)
	}

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("GetByID() error = %v, want ErrItemNotFound", err)
	}
}

func TestItemRepositoryRejectsBadCorpus(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"empty corpus", `{"items": []}`},
		{"missing id", `{"items": [{"term": "rojo", "translation": "red", "type": "flashcard"}]}`},
		{"duplicate id", `{"items": [
			{"id": "rojo", "term": "rojo", "translation": "red", "type": "flashcard"},
			{"id": "rojo", "term": "rojo", "translation": "red", "type": "flashcard"}
		]}`},
		{"malformed json", `{"items": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewItemRepository(writeTempJSON(t, tt.json)); err == nil {
				t.Error("NewItemRepository() error = nil, want error")
			}
		})
	}
}

func TestItemRepositoryMissingFile(t *testing.T) {
	if _, err := NewItemRepository(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("NewItemRepository() error = nil, want error for a missing file")
	}
}
