package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// AnswerValidator checks typed answers with fuzzy matching support, so a
// missing accent or a single typo still counts as a correct recall.
type AnswerValidator struct {
	threshold float64 // similarity threshold (0.0 - 1.0)
}

// NewAnswerValidator creates an AnswerValidator with the default
// similarity threshold.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{
		threshold: 0.8,
	}
}

// Exact reports whether the user's answer matches the correct one after
// normalization alone, with no fuzzy tolerance.
func (v *AnswerValidator) Exact(userAnswer, correctAnswer string) bool {
	return v.normalize(userAnswer) == v.normalize(correctAnswer)
}

// Validate reports whether the user's answer is close enough to the
// correct one: normalized equality or Levenshtein similarity above the
// threshold.
func (v *AnswerValidator) Validate(userAnswer, correctAnswer string) bool {
	user := v.normalize(userAnswer)
	correct := v.normalize(correctAnswer)

	if user == correct {
		return true
	}

	return v.similarity(user, correct) >= v.threshold
}

// normalize lowercases, trims, folds diacritics, and collapses
// whitespace for comparison.
func (v *AnswerValidator) normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = foldDiacritics(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// similarity is 1 minus the normalized Levenshtein distance.
func (v *AnswerValidator) similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// foldDiacritics strips combining marks after NFD decomposition, so
// "café" and "cafe" compare equal.
func foldDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// levenshteinDistance computes the edit distance between two strings
// using the two-row dynamic programming form.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	cols := len(r2) + 1

	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
