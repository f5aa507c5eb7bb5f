package service

import (
	"regexp"
	"strings"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

// Lexical relatedness policy for session building. The tables below are
// a best-effort content-relevance signal, not a contract: authored
// category tags on items take precedence, and the keyword lists only
// catch untagged corpus entries. Everything in this file is replaceable
// without touching the orchestrator.

// categoryKeywords maps a lexical category to the tokens that mark an
// untagged item or lesson as belonging to it.
var categoryKeywords = map[string][]string{
	"colors":  {"red", "blue", "green", "yellow", "black", "white", "orange", "color", "colour"},
	"food":    {"bread", "milk", "apple", "cheese", "water", "coffee", "rice", "meat", "eat", "drink", "food"},
	"family":  {"mother", "father", "sister", "brother", "son", "daughter", "family", "parents"},
	"numbers": {"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten", "hundred", "number", "price"},
	"verbs":   {"speak", "walk", "run", "have", "want", "need", "buy", "live", "work", "study"},
	"travel":  {"train", "bus", "ticket", "airport", "hotel", "street", "city", "map"},
	"time":    {"today", "tomorrow", "yesterday", "hour", "minute", "week", "month", "morning"},
}

// lessonTopics maps lesson-id prefixes to a category, for lessons whose
// titles carry no usable keywords.
var lessonTopics = map[string]string{
	"col":  "colors",
	"food": "food",
	"fam":  "family",
	"num":  "numbers",
	"verb": "verbs",
	"trav": "travel",
	"time": "time",
}

var (
	numericShapeRe = regexp.MustCompile(`[0-9]`)
	wordSplitRe    = regexp.MustCompile(`[^\p{L}0-9]+`)
)

// quantity words that mark an item as numeric without containing digits.
var quantityWords = map[string]struct{}{
	"one": {}, "two": {}, "three": {}, "four": {}, "five": {},
	"six": {}, "seven": {}, "eight": {}, "nine": {}, "ten": {},
	"hundred": {}, "thousand": {}, "price": {}, "cost": {}, "euro": {}, "dollar": {},
}

// itemCategories returns the lexical categories an item belongs to,
// from its authored tags first and the keyword tables second.
func itemCategories(item entities.Item) map[string]struct{} {
	cats := make(map[string]struct{})
	for _, tag := range item.Categories {
		cats[strings.ToLower(tag)] = struct{}{}
	}

	text := strings.ToLower(item.Term + " " + item.Translation)
	for cat, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				cats[cat] = struct{}{}
				break
			}
		}
	}

	return cats
}

// lessonCategories returns the categories a lesson covers: the union of
// its items' categories, keyword matches on its title, and the
// id-prefix topic mapping.
func lessonCategories(lesson entities.LessonSpec, lessonItems []entities.Item) map[string]struct{} {
	cats := make(map[string]struct{})
	for _, item := range lessonItems {
		for cat := range itemCategories(item) {
			cats[cat] = struct{}{}
		}
	}

	title := strings.ToLower(lesson.Title)
	for cat, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				cats[cat] = struct{}{}
				break
			}
		}
	}

	id := strings.ToLower(lesson.ID)
	for prefix, cat := range lessonTopics {
		if strings.HasPrefix(id, prefix) {
			cats[cat] = struct{}{}
		}
	}

	return cats
}

// sharesCategory reports whether the item belongs to any of the given
// lesson categories.
func sharesCategory(item entities.Item, lessonCats map[string]struct{}) bool {
	for cat := range itemCategories(item) {
		if _, ok := lessonCats[cat]; ok {
			return true
		}
	}
	return false
}

// contentRelevance counts the lesson-text tokens that also occur in the
// item's term or translation. Higher means more on-topic.
func contentRelevance(item entities.Item, lesson entities.LessonSpec) float64 {
	itemText := strings.ToLower(item.Term + " " + item.Translation)

	shared := 0
	seen := make(map[string]struct{})
	for _, tok := range wordSplitRe.Split(strings.ToLower(lesson.Title+" "+lesson.ID), -1) {
		if len(tok) < 3 {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if strings.Contains(itemText, tok) {
			shared++
		}
	}

	return float64(shared)
}

// hasNumericShape reports whether the item's text looks like a number,
// price, or quantity, making it eligible for a numeric-context exercise.
func hasNumericShape(item entities.Item) bool {
	text := item.Term + " " + item.Translation
	if numericShapeRe.MatchString(text) {
		return true
	}
	for _, tok := range wordSplitRe.Split(strings.ToLower(text), -1) {
		if _, ok := quantityWords[tok]; ok {
			return true
		}
	}
	return false
}

// verbSuffixes mark target-language terms that decline like verbs.
var verbSuffixes = []string{"ar", "er", "ir"}

// hasVerbShape reports whether the item's text looks like a verb, making
// it eligible for a verb-usage exercise. An explicit "verbs" tag always
// qualifies; otherwise the "to ..." translation form or a verb suffix on
// a multi-syllable term does.
func hasVerbShape(item entities.Item) bool {
	for _, tag := range item.Categories {
		if strings.EqualFold(tag, "verbs") {
			return true
		}
	}
	if strings.HasPrefix(strings.ToLower(item.Translation), "to ") {
		return true
	}
	term := strings.ToLower(item.Term)
	if len([]rune(term)) > 4 {
		for _, suf := range verbSuffixes {
			if strings.HasSuffix(term, suf) {
				return true
			}
		}
	}
	return false
}
