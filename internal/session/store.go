package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps active game sessions keyed by session ID. Each key owns an
// independent Session with its own lock, so concurrent players never share
// game state.
type Store struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	maxQuestions int
	ttl          time.Duration
}

// NewStore creates a session store. Sessions idle for longer than ttl are
// swept by a background goroutine.
func NewStore(maxQuestions int, ttl time.Duration) *Store {
	st := &Store{
		sessions:     make(map[string]*Session),
		maxQuestions: maxQuestions,
		ttl:          ttl,
	}

	go st.cleanupIdle()

	return st
}

// Create registers a new session and returns it
func (st *Store) Create() *Session {
	s := newSession(uuid.New().String(), st.maxQuestions)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.id] = s
	return s
}

// Get returns the session for id, if it exists
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate returns the session for id, registering a fresh one if the
// token outlived its session (e.g. after a TTL sweep).
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = newSession(id, st.maxQuestions)
	st.sessions[id] = s
	return s
}

// Count returns the number of live sessions
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// cleanupIdle removes sessions that have not seen a turn within the TTL
func (st *Store) cleanupIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		st.mu.Lock()
		for id, s := range st.sessions {
			if s.idleSince(now) > st.ttl {
				delete(st.sessions, id)
			}
		}
		st.mu.Unlock()
	}
}
