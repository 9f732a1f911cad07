package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	sessionDuration = 8 * time.Hour
	cleanupInterval = 10 * time.Minute
)

// SessionStore keeps operator sessions in memory, keyed by a random id.
// Sessions expire after a fixed duration; a background janitor removes the
// dead ones so abandoned photos do not pile up.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore creates a store and starts its cleanup goroutine.
func NewSessionStore() *SessionStore {
	st := &SessionStore{
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go st.cleanupLoop()
	return st
}

// Create starts a fresh session.
func (st *SessionStore) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(sessionDuration),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given id, or nil if it does not exist
// or has expired.
func (st *SessionStore) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil
	}
	return s
}

// Delete removes a session.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Count returns the number of live sessions.
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Stop terminates the cleanup goroutine.
func (st *SessionStore) Stop() {
	st.stopOnce.Do(func() {
		close(st.stop)
	})
}

func (st *SessionStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.removeExpired()
		case <-st.stop:
			return
		}
	}
}

func (st *SessionStore) removeExpired() {
	now := time.Now()
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if now.After(s.ExpiresAt) {
			delete(st.sessions, id)
		}
	}
}
