package telegram

import (
	"sync"
	"time"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

// activeSession tracks one in-flight practice sitting for a chat.
// Exercise instances are ephemeral by contract: they exist only here and
// are discarded when the session ends.
type activeSession struct {
	LearnerID int64
	LessonID  string // empty for review sessions
	Exercises []entities.ExerciseInstance
	Index     int
	Correct   int
	AskedAt   time.Time // when the current exercise was shown
}

// current returns the exercise waiting for an answer, or nil when the
// session is finished.
func (s *activeSession) current() *entities.ExerciseInstance {
	if s.Index >= len(s.Exercises) {
		return nil
	}
	return &s.Exercises[s.Index]
}

// sessionStore keeps active sessions per chat. The update loop is
// sequential, but callbacks may race with late messages, so access is
// guarded.
type sessionStore struct {
	mu     sync.Mutex
	byChat map[int64]*activeSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{byChat: make(map[int64]*activeSession)}
}

func (st *sessionStore) get(chatID int64) *activeSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.byChat[chatID]
}

func (st *sessionStore) put(chatID int64, s *activeSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.byChat[chatID] = s
}

func (st *sessionStore) remove(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.byChat, chatID)
}
