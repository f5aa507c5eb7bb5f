package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

func newTestOrchestrator(items []entities.Item, lessons []entities.LessonSpec, statRepo *memStatRepo, stateRepo *memStateRepo, seed int64) *SessionOrchestrator {
	rng := rand.New(rand.NewSource(seed))
	return NewSessionOrchestrator(
		&memItemRepo{items: items},
		&memLessonRepo{lessons: lessons},
		statRepo,
		stateRepo,
		NewOptionGenerator(rng),
		rng,
		zap.NewNop(),
	)
}

// buildCorpus returns a pool of count flashcards; the first tagged items
// carry the given category, the rest are tagged "misc".
func buildCorpus(count, tagged int, category string) []entities.Item {
	items := make([]entities.Item, 0, count)
	for i := 0; i < count; i++ {
		cat := "misc"
		if i < tagged {
			cat = category
		}
		items = append(items, flashcard(
			fmt.Sprintf("w%02d", i),
			fmt.Sprintf("palabra%02d", i),
			fmt.Sprintf("word%02d", i),
			cat,
		))
	}
	return items
}

func TestBuildLessonSessionFromSmallLessonAndLargePool(t *testing.T) {
	ctx := context.Background()

	pool := buildCorpus(50, 20, "food")
	lesson := entities.LessonSpec{
		ID:      "food-01",
		Title:   "At the market",
		ItemIDs: []string{"w00", "w01", "w02"},
	}

	orch := newTestOrchestrator(pool, []entities.LessonSpec{lesson}, newMemStatRepo(), newMemStateRepo(), 1)

	exercises, err := orch.BuildLessonSession(ctx, 42, "food-01", 32)
	if err != nil {
		t.Fatalf("BuildLessonSession() error = %v", err)
	}

	if len(exercises) != 32 {
		t.Fatalf("got %d exercises, want exactly 32 with a large enough pool", len(exercises))
	}

	byID := make(map[string]entities.Item, len(pool))
	for _, item := range pool {
		byID[item.ID] = item
	}

	seenIDs := make(map[string]struct{}, len(exercises))
	for _, ex := range exercises {
		if _, dup := seenIDs[ex.ID]; dup {
			t.Errorf("duplicate exercise id %q", ex.ID)
		}
		seenIDs[ex.ID] = struct{}{}

		item, ok := byID[ex.ItemID]
		if !ok {
			t.Errorf("exercise %q references unknown item %q", ex.ID, ex.ItemID)
			continue
		}
		if !item.Valid() {
			t.Errorf("exercise %q references item %q without a term/translation pair", ex.ID, ex.ItemID)
		}
		if ex.Prompt == "" {
			t.Errorf("exercise %q has an empty prompt", ex.ID)
		}
		if ex.CorrectAnswer == "" {
			t.Errorf("exercise %q has no correct answer", ex.ID)
		}

		if ex.IsMultipleChoice() {
			assertOptionsWellFormed(t, ex.Options, ex.CorrectIndex, ex.CorrectAnswer)
			if !contains(ex.Options, item.Translation) {
				t.Errorf("exercise %q options %v miss the correct translation %q", ex.ID, ex.Options, item.Translation)
			}
		} else if ex.CorrectIndex != -1 {
			t.Errorf("typed exercise %q has CorrectIndex = %d, want -1", ex.ID, ex.CorrectIndex)
		}
	}
}

func TestBuildLessonSessionNeverExceedsTarget(t *testing.T) {
	ctx := context.Background()

	pool := buildCorpus(50, 20, "food")
	lesson := entities.LessonSpec{
		ID:      "food-01",
		Title:   "At the market",
		ItemIDs: []string{"w00", "w01", "w02"},
	}

	orch := newTestOrchestrator(pool, []entities.LessonSpec{lesson}, newMemStatRepo(), newMemStateRepo(), 7)

	for _, target := range []int{1, 5, 32, 500} {
		exercises, err := orch.BuildLessonSession(ctx, 42, "food-01", target)
		if err != nil {
			t.Fatalf("BuildLessonSession(target=%d) error = %v", target, err)
		}
		if len(exercises) > target {
			t.Errorf("target %d: got %d exercises", target, len(exercises))
		}
	}
}

func TestBuildLessonSessionEmptyCandidatesYieldsEmpty(t *testing.T) {
	ctx := context.Background()

	pool := buildCorpus(10, 0, "")
	lesson := entities.LessonSpec{ID: "misc-01", Title: "Grab bag"}

	orch := newTestOrchestrator(pool, []entities.LessonSpec{lesson}, newMemStatRepo(), newMemStateRepo(), 1)

	exercises, err := orch.BuildLessonSession(ctx, 42, "misc-01", 32)
	if err != nil {
		t.Fatalf("BuildLessonSession() error = %v", err)
	}
	if len(exercises) != 0 {
		t.Errorf("got %d exercises, want 0 for an empty candidate set", len(exercises))
	}
}

func TestBuildLessonSessionSkipsUnknownItems(t *testing.T) {
	ctx := context.Background()

	pool := []entities.Item{flashcard("pan", "el pan", "the bread", "solo")}
	lesson := entities.LessonSpec{
		ID:      "solo-01",
		Title:   "One word",
		ItemIDs: []string{"pan", "missing", "also-missing"},
	}

	orch := newTestOrchestrator(pool, []entities.LessonSpec{lesson}, newMemStatRepo(), newMemStateRepo(), 1)

	exercises, err := orch.BuildLessonSession(ctx, 42, "solo-01", 32)
	if err != nil {
		t.Fatalf("BuildLessonSession() error = %v", err)
	}
	if len(exercises) == 0 {
		t.Fatal("got no exercises, want some for the one known item")
	}
	for _, ex := range exercises {
		if ex.ItemID != "pan" {
			t.Errorf("exercise references %q, want only the known item", ex.ItemID)
		}
	}
}

func TestBuildReviewSessionUsesDueItemsOnly(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	pool := buildCorpus(10, 0, "")
	stateRepo := newMemStateRepo()
	seed := []entities.ReviewState{
		{ItemID: "w00", EaseFactor: 2.5, Due: now.Add(-time.Hour)},
		{ItemID: "w01", EaseFactor: 2.5, Due: now.Add(-2 * time.Hour)},
		{ItemID: "w02", EaseFactor: 2.5, Due: now.Add(24 * time.Hour)},
	}
	for _, state := range seed {
		if err := stateRepo.Upsert(ctx, 42, state); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	orch := newTestOrchestrator(pool, nil, newMemStatRepo(), stateRepo, 1)

	exercises, err := orch.BuildReviewSession(ctx, 42, now, 0)
	if err != nil {
		t.Fatalf("BuildReviewSession() error = %v", err)
	}
	if len(exercises) == 0 {
		t.Fatal("got no exercises, want some for two due items")
	}

	covered := make(map[string]struct{})
	for _, ex := range exercises {
		if ex.ItemID != "w00" && ex.ItemID != "w01" {
			t.Errorf("exercise references %q, want only due items", ex.ItemID)
		}
		covered[ex.ItemID] = struct{}{}
	}
	if len(covered) != 2 {
		t.Errorf("session covers %d items, want both due items", len(covered))
	}
}

func TestBuildReviewSessionEmptyWhenNothingDue(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	orch := newTestOrchestrator(buildCorpus(10, 0, ""), nil, newMemStatRepo(), newMemStateRepo(), 1)

	exercises, err := orch.BuildReviewSession(ctx, 42, now, 0)
	if err != nil {
		t.Fatalf("BuildReviewSession() error = %v", err)
	}
	if len(exercises) != 0 {
		t.Errorf("got %d exercises, want 0", len(exercises))
	}
}

func TestRankCandidatesWeakestFirst(t *testing.T) {
	strong := flashcard("strong", "fuerte", "strong")
	unseen := flashcard("unseen", "nuevo", "new")
	weak := flashcard("weak", "debil", "weak")

	stats := map[string]*entities.ItemStat{
		"strong": {ItemID: "strong", Attempts: 4, Correct: 4},
		"weak":   {ItemID: "weak", Attempts: 4, Correct: 0},
	}
	lesson := entities.LessonSpec{ID: "misc-01", Title: "Grab bag"}

	ranked := rankCandidates([]entities.Item{strong, unseen, weak}, stats, lesson)

	want := []string{"weak", "unseen", "strong"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Fatalf("ranked[%d] = %q, want %q (full order %v)", i, ranked[i].ID, id, ranked)
		}
	}
}

func TestRankCandidatesRelevanceBreaksTies(t *testing.T) {
	onTopic := flashcard("tren", "el tren", "the train")
	offTopic := flashcard("leche", "la leche", "the milk")
	lesson := entities.LessonSpec{ID: "trav-01", Title: "Train travel"}

	ranked := rankCandidates([]entities.Item{offTopic, onTopic}, nil, lesson)

	if ranked[0].ID != "tren" {
		t.Errorf("ranked[0] = %q, want the on-topic item first", ranked[0].ID)
	}
}

func TestMergeCandidatesDedupesAndCaps(t *testing.T) {
	a := flashcard("a", "a", "letter a")
	b := flashcard("b", "b", "letter b")
	c := flashcard("c", "c", "letter c")
	invalid := entities.Item{ID: "broken", Type: entities.ItemTypeFlashcard}

	merged := mergeCandidates([]entities.Item{a, b, invalid}, []entities.Item{b, c, a}, 2)

	if len(merged) != 2 {
		t.Fatalf("got %d candidates, want 2", len(merged))
	}
	if merged[0].ID != "a" || merged[1].ID != "b" {
		t.Errorf("merged = [%s %s], want [a b]", merged[0].ID, merged[1].ID)
	}
}
