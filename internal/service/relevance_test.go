package service

import (
	"testing"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

func TestHasNumericShape(t *testing.T) {
	tests := []struct {
		name string
		item entities.Item
		want bool
	}{
		{"digits in term", flashcard("n100", "100", "one hundred"), true},
		{"quantity word in translation", flashcard("dos", "dos", "two"), true},
		{"price vocabulary", flashcard("precio", "el precio", "the price"), true},
		{"plain color", flashcard("rojo", "rojo", "red"), false},
		{"plain noun", flashcard("pan", "el pan", "the bread"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasNumericShape(tt.item); got != tt.want {
				t.Errorf("hasNumericShape(%q/%q) = %v, want %v", tt.item.Term, tt.item.Translation, got, tt.want)
			}
		})
	}
}

func TestHasVerbShape(t *testing.T) {
	tests := []struct {
		name string
		item entities.Item
		want bool
	}{
		{"tagged verb", flashcard("ir", "ir", "to go", "verbs"), true},
		{"to-infinitive translation", flashcard("comer", "comer", "to eat"), true},
		{"ar suffix on long term", flashcard("hablar", "hablar", "speak"), true},
		{"short term with verb suffix", flashcard("mar", "mar", "sea"), false},
		{"plain noun", flashcard("pan", "el pan", "the bread"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasVerbShape(tt.item); got != tt.want {
				t.Errorf("hasVerbShape(%q/%q) = %v, want %v", tt.item.Term, tt.item.Translation, got, tt.want)
			}
		})
	}
}

func TestItemCategoriesMergesTagsAndKeywords(t *testing.T) {
	item := flashcard("leche", "la leche", "the milk", "Food")

	cats := itemCategories(item)

	if _, ok := cats["food"]; !ok {
		t.Errorf("itemCategories() = %v, want food from the authored tag", cats)
	}

	untagged := flashcard("azul", "azul", "blue")
	cats = itemCategories(untagged)
	if _, ok := cats["colors"]; !ok {
		t.Errorf("itemCategories() = %v, want colors from the keyword table", cats)
	}
}

func TestLessonCategoriesFromIDPrefix(t *testing.T) {
	lesson := entities.LessonSpec{ID: "trav-01", Title: "Getting there"}

	cats := lessonCategories(lesson, nil)

	if _, ok := cats["travel"]; !ok {
		t.Errorf("lessonCategories() = %v, want travel from the id prefix", cats)
	}
}

func TestSharesCategory(t *testing.T) {
	lessonCats := map[string]struct{}{"food": {}}

	if !sharesCategory(flashcard("pan", "el pan", "the bread", "food"), lessonCats) {
		t.Error("sharesCategory() = false for a tagged food item")
	}
	if sharesCategory(flashcard("tren", "el tren", "the train", "travel"), lessonCats) {
		t.Error("sharesCategory() = true for an unrelated item")
	}
}

func TestContentRelevance(t *testing.T) {
	lesson := entities.LessonSpec{ID: "trav-01", Title: "Train travel"}

	onTopic := flashcard("tren", "el tren", "the train")
	offTopic := flashcard("leche", "la leche", "the milk")

	if got := contentRelevance(onTopic, lesson); got < 1 {
		t.Errorf("contentRelevance(on-topic) = %v, want >= 1", got)
	}
	if got := contentRelevance(offTopic, lesson); got != 0 {
		t.Errorf("contentRelevance(off-topic) = %v, want 0", got)
	}
}
