// Package entities contains domain entities used across the application.
package entities

// ItemType tags a corpus item with the exercise family it belongs to.
// Only flashcard items participate in review scheduling and session ranking.
type ItemType string

const (
	ItemTypeFlashcard ItemType = "flashcard"
	ItemTypeDialogue  ItemType = "dialogue"
	ItemTypeGrammar   ItemType = "grammar"
)

// Item is one vocabulary entry from the authored content corpus.
// The corpus owns it; the review core treats it as read-only.
type Item struct {
	ID          string   `json:"id"`
	Term        string   `json:"term"`        // term in the target language
	Translation string   `json:"translation"` // translation in the learner's language
	Type        ItemType `json:"type"`
	Categories  []string `json:"categories,omitempty"` // authored skill/category tags
}

// IsFlashcard reports whether the item participates in review scheduling.
func (i Item) IsFlashcard() bool {
	return i.Type == ItemTypeFlashcard
}

// Valid reports whether the item carries the fields every exercise needs.
// Items failing this check are skipped during session building.
func (i Item) Valid() bool {
	return i.ID != "" && i.Term != "" && i.Translation != ""
}
