package entities

import "time"

// Learner represents one registered learner. The review core assumes a
// single learner per logical call sequence; concurrent mutation of the
// same learner's state is out of scope.
type Learner struct {
	ID        int64 // Telegram user ID
	ChatID    int64
	IsActive  bool
	CreatedAt time.Time
}

// NewLearner creates a learner pending registration.
func NewLearner(id, chatID int64) *Learner {
	return &Learner{
		ID:     id,
		ChatID: chatID,
	}
}
