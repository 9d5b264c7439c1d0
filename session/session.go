package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session identifies one local conversation context.
type Session struct {
	ID      string
	UserID  string
	Created time.Time
}

// InMemoryStore is a process-local session registry safe for concurrent use.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]Session)}
}

// Create allocates a new session for the given user.
func (s *InMemoryStore) Create(userID string) Session {
	sess := Session{
		ID:      fmt.Sprintf("session_%s", uuid.NewString()[:8]),
		UserID:  userID,
		Created: time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session with the given id if it exists.
func (s *InMemoryStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}
