package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

const (
	// DefaultSessionSize bounds one practice sitting.
	DefaultSessionSize = 32

	// relatedItemLimit caps items pulled in from the global pool.
	relatedItemLimit = 16

	// candidatePoolLimit caps the merged lesson + related candidate set
	// before ranking.
	candidatePoolLimit = 24

	// relevanceWeight discounts the priority score of on-topic items so
	// they surface earlier in the ranking.
	relevanceWeight = 0.1
)

// SessionOrchestrator turns a lesson plus the learner's statistics into
// a ranked, deduplicated, diversified exercise queue.
//
// Session building is deliberately not idempotent: the final shuffle
// draws from the injected RNG on every call, so identical inputs yield a
// different exercise order. Tests inject a seeded source.
type SessionOrchestrator struct {
	itemRepo   ItemRepository
	lessonRepo LessonRepository
	statRepo   ItemStatRepository
	stateRepo  ReviewStateRepository
	optionGen  *OptionGenerator
	rng        *rand.Rand
	logger     *zap.Logger
}

// NewSessionOrchestrator creates a SessionOrchestrator.
func NewSessionOrchestrator(
	itemRepo ItemRepository,
	lessonRepo LessonRepository,
	statRepo ItemStatRepository,
	stateRepo ReviewStateRepository,
	optionGen *OptionGenerator,
	rng *rand.Rand,
	logger *zap.Logger,
) *SessionOrchestrator {
	return &SessionOrchestrator{
		itemRepo:   itemRepo,
		lessonRepo: lessonRepo,
		statRepo:   statRepo,
		stateRepo:  stateRepo,
		optionGen:  optionGen,
		rng:        rng,
		logger:     logger,
	}
}

// BuildLessonSession assembles one practice session for a lesson:
// the lesson's own flashcards plus related items from the global pool,
// ranked weakest-and-most-on-topic first, synthesized into exercise
// variants, shuffled, and capped at target.
//
// A short corpus yields a short session; an empty candidate set yields an
// empty session. Neither is padded with repeats, and callers must handle
// the empty case explicitly.
func (o *SessionOrchestrator) BuildLessonSession(ctx context.Context, learnerID int64, lessonID string, target int) ([]entities.ExerciseInstance, error) {
	if target <= 0 {
		target = DefaultSessionSize
	}

	lesson, err := o.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	pool, err := o.itemRepo.GetAllFlashcards(ctx)
	if err != nil {
		return nil, fmt.Errorf("get flashcard pool: %w", err)
	}

	stats, err := o.statRepo.GetAllByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("get item stats: %w", err)
	}

	byID := make(map[string]entities.Item, len(pool))
	for _, item := range pool {
		byID[item.ID] = item
	}

	// Lesson's own flashcards, in authored order. Unknown or
	// non-flashcard ids are skipped rather than aborting the session.
	lessonItems := make([]entities.Item, 0, len(lesson.ItemIDs))
	for _, id := range lesson.ItemIDs {
		item, ok := byID[id]
		if !ok {
			o.logger.Warn("lesson references unknown item",
				zap.String("lesson_id", lesson.ID),
				zap.String("item_id", id),
			)
			continue
		}
		lessonItems = append(lessonItems, item)
	}

	related := o.relatedItems(*lesson, lessonItems, pool)

	candidates := mergeCandidates(lessonItems, related, candidatePoolLimit)

	ranked := rankCandidates(candidates, stats, *lesson)

	exercises := o.synthesize(ranked, pool)

	o.rng.Shuffle(len(exercises), func(i, j int) {
		exercises[i], exercises[j] = exercises[j], exercises[i]
	})

	if len(exercises) > target {
		exercises = exercises[:target]
	}

	return exercises, nil
}

// BuildReviewSession assembles a session from the learner's due items
// only, weakest first, using the same synthesis pipeline as lesson
// sessions.
func (o *SessionOrchestrator) BuildReviewSession(ctx context.Context, learnerID int64, now time.Time, target int) ([]entities.ExerciseInstance, error) {
	if target <= 0 {
		target = DefaultSessionSize
	}

	dueIDs, err := o.stateRepo.GetDueItems(ctx, learnerID, now, candidatePoolLimit)
	if err != nil {
		return nil, fmt.Errorf("get due items: %w", err)
	}

	pool, err := o.itemRepo.GetAllFlashcards(ctx)
	if err != nil {
		return nil, fmt.Errorf("get flashcard pool: %w", err)
	}

	stats, err := o.statRepo.GetAllByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("get item stats: %w", err)
	}

	byID := make(map[string]entities.Item, len(pool))
	for _, item := range pool {
		byID[item.ID] = item
	}

	candidates := make([]entities.Item, 0, len(dueIDs))
	for _, id := range dueIDs {
		if item, ok := byID[id]; ok && item.Valid() {
			candidates = append(candidates, item)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return stats[candidates[i].ID].WeaknessScore() < stats[candidates[j].ID].WeaknessScore()
	})

	exercises := o.synthesize(candidates, pool)

	o.rng.Shuffle(len(exercises), func(i, j int) {
		exercises[i], exercises[j] = exercises[j], exercises[i]
	})

	if len(exercises) > target {
		exercises = exercises[:target]
	}

	return exercises, nil
}

// relatedItems pulls up to relatedItemLimit flashcards from the global
// pool that share a lexical category with the lesson, preserving pool
// order. Best effort; an empty result is fine.
func (o *SessionOrchestrator) relatedItems(lesson entities.LessonSpec, lessonItems []entities.Item, pool []entities.Item) []entities.Item {
	inLesson := make(map[string]struct{}, len(lessonItems))
	for _, item := range lessonItems {
		inLesson[item.ID] = struct{}{}
	}

	lessonCats := lessonCategories(lesson, lessonItems)
	if len(lessonCats) == 0 {
		return nil
	}

	related := make([]entities.Item, 0, relatedItemLimit)
	for _, item := range pool {
		if len(related) >= relatedItemLimit {
			break
		}
		if _, ok := inLesson[item.ID]; ok {
			continue
		}
		if sharesCategory(item, lessonCats) {
			related = append(related, item)
		}
	}

	return related
}

// mergeCandidates merges the lesson and related sets, dropping
// duplicates and items missing a term or translation, and caps the
// result.
func mergeCandidates(lessonItems, related []entities.Item, limit int) []entities.Item {
	merged := make([]entities.Item, 0, len(lessonItems)+len(related))
	seen := make(map[string]struct{}, len(lessonItems)+len(related))

	for _, item := range append(append([]entities.Item{}, lessonItems...), related...) {
		if len(merged) >= limit {
			break
		}
		if !item.Valid() {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		merged = append(merged, item)
	}

	return merged
}

// rankCandidates orders candidates ascending by composite priority:
// weakness minus a relevance discount, so weaker and more on-topic items
// surface first. Ties keep input order; that stable arbitrariness is
// accepted.
func rankCandidates(candidates []entities.Item, stats map[string]*entities.ItemStat, lesson entities.LessonSpec) []entities.Item {
	ranked := append([]entities.Item{}, candidates...)
	score := func(item entities.Item) float64 {
		return stats[item.ID].WeaknessScore() - relevanceWeight*contentRelevance(item, lesson)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) < score(ranked[j])
	})
	return ranked
}

// synthesize expands each ranked item into its exercise variants: one
// multiple choice, conditional numeric and verb variants, and the two
// typed production directions.
func (o *SessionOrchestrator) synthesize(items []entities.Item, pool []entities.Item) []entities.ExerciseInstance {
	exercises := make([]entities.ExerciseInstance, 0, len(items)*4)

	for _, item := range items {
		exercises = append(exercises, o.multipleChoice(item, pool, entities.ExerciseMultipleChoice,
			fmt.Sprintf("What does “%s” mean?", item.Term)))

		if hasNumericShape(item) {
			exercises = append(exercises, o.multipleChoice(item, pool, entities.ExerciseNumericContext,
				fmt.Sprintf("You see “%s” on a price tag. What does it mean?", item.Term)))
		}

		if hasVerbShape(item) {
			exercises = append(exercises, o.multipleChoice(item, pool, entities.ExerciseVerbUsage,
				fmt.Sprintf("Which meaning fits the verb “%s”?", item.Term)))
		}

		exercises = append(exercises,
			entities.ExerciseInstance{
				ID:            uuid.NewString(),
				ItemID:        item.ID,
				Kind:          entities.ExerciseProduceTerm,
				Prompt:        fmt.Sprintf("Type the word for “%s”", item.Translation),
				CorrectIndex:  -1,
				CorrectAnswer: item.Term,
			},
			entities.ExerciseInstance{
				ID:            uuid.NewString(),
				ItemID:        item.ID,
				Kind:          entities.ExerciseProduceMeaning,
				Prompt:        fmt.Sprintf("Type the meaning of “%s”", item.Term),
				CorrectIndex:  -1,
				CorrectAnswer: item.Translation,
			},
		)
	}

	return exercises
}

// multipleChoice builds one option-based exercise for an item, logging
// when the distractor pool was too small to avoid placeholders.
func (o *SessionOrchestrator) multipleChoice(item entities.Item, pool []entities.Item, kind entities.ExerciseKind, prompt string) entities.ExerciseInstance {
	options, correctIndex, degraded := o.optionGen.GenerateOptions(item, pool)
	if degraded {
		o.logger.Warn("distractor pool exhausted, placeholder options used",
			zap.String("item_id", item.ID),
		)
	}

	return entities.ExerciseInstance{
		ID:            uuid.NewString(),
		ItemID:        item.ID,
		Kind:          kind,
		Prompt:        prompt,
		Options:       options,
		CorrectIndex:  correctIndex,
		CorrectAnswer: item.Translation,
	}
}
