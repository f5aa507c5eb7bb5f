package entities

// LessonSpec is an authored lesson: a titled, ordered set of corpus items.
// Read-only input to session building.
type LessonSpec struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	ItemIDs []string `json:"item_ids"`
}
