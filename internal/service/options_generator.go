package service

import (
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

// optionCount is the number of choices shown per multiple-choice
// exercise: the correct translation plus two distractors.
const optionCount = 3

// distractorPlaceholders pad the option list when the corpus cannot
// supply enough distinct wrong answers. Options built this way are
// reported as degraded so callers can surface it.
var distractorPlaceholders = []string{"(none of the others)", "(no translation)"}

// determinerTokens feed the similar-complexity heuristic: two strings
// that both open with a determiner read as comparable answers.
var determinerTokens = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "to": {},
	"el": {}, "la": {}, "los": {}, "las": {}, "un": {}, "una": {},
}

// OptionGenerator builds multiple-choice options for a target item.
type OptionGenerator struct {
	rng *rand.Rand
}

// NewOptionGenerator creates an option generator driven by rng.
// Tests pass a seeded source; production wires a time-seeded one.
func NewOptionGenerator(rng *rand.Rand) *OptionGenerator {
	return &OptionGenerator{rng: rng}
}

// GenerateOptions returns exactly three distinct options including the
// target's correct translation, in shuffled order, plus the index of the
// correct answer. degraded reports that placeholder distractors were
// needed because the pool was too small.
func (g *OptionGenerator) GenerateOptions(target entities.Item, pool []entities.Item) (options []string, correctIndex int, degraded bool) {
	correct := target.Translation

	distractors := g.pickDistractors(target, pool, optionCount-1)

	for _, ph := range distractorPlaceholders {
		if len(distractors) >= optionCount-1 {
			break
		}
		if ph != correct && !contains(distractors, ph) {
			distractors = append(distractors, ph)
			degraded = true
		}
	}

	options = make([]string, 0, optionCount)
	options = append(options, correct)
	options = append(options, distractors...)

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	return options, correctIndex, degraded
}

// pickDistractors selects up to count wrong answers, preferring
// candidates of similar complexity to the correct one and falling back
// to a uniform-random pick from whatever remains.
func (g *OptionGenerator) pickDistractors(target entities.Item, pool []entities.Item, count int) []string {
	candidates := make([]string, 0, len(pool))
	seen := map[string]struct{}{target.Translation: {}}
	for _, item := range pool {
		if item.ID == target.ID || !item.Valid() {
			continue
		}
		if _, dup := seen[item.Translation]; dup {
			continue
		}
		seen[item.Translation] = struct{}{}
		candidates = append(candidates, item.Translation)
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	picked := make([]string, 0, count)
	for _, c := range candidates {
		if len(picked) >= count {
			break
		}
		if similarComplexity(target.Translation, c) {
			picked = append(picked, c)
		}
	}

	// Uniform-random fallback when too few similar candidates exist.
	for _, c := range candidates {
		if len(picked) >= count {
			break
		}
		if !contains(picked, c) {
			picked = append(picked, c)
		}
	}

	return picked
}

// similarComplexity reports whether a candidate is a plausible distractor
// for the correct answer: close in length, both numeric, or both opening
// with a determiner. Length-only guessing stops working when options look
// alike.
func similarComplexity(correct, candidate string) bool {
	diff := utf8.RuneCountInString(candidate) - utf8.RuneCountInString(correct)
	if diff >= -2 && diff <= 2 {
		return true
	}
	if containsDigit(correct) && containsDigit(candidate) {
		return true
	}
	return hasDeterminer(correct) && hasDeterminer(candidate)
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasDeterminer(s string) bool {
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if _, ok := determinerTokens[tok]; ok {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
