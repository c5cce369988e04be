package application

import (
	"sync"
	"time"

	"github.com/staffhq/warden/internal/models"
)

// session is a live questionnaire with its bookkeeping. The store mutex
// guards the map; each session's own mutex serializes advancement for its
// owner, so two rapid replies from the same user apply one at a time in
// arrival order. Lock ordering is session.mu before store.mu, never the
// reverse.
type session struct {
	models.Session

	// mu serializes replies and expiry for this owner
	mu sync.Mutex

	// generation is bumped every time a prompt is (re)armed; a deadline
	// firing against an older generation is stale and must no-op
	generation int

	// timer is the pending per-question deadline, if any
	timer *time.Timer

	// removed marks the session dead for waiters that raced its removal
	removed bool
}

// sessionStore owns all live sessions. No other code touches the map.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
	}
}

// create registers a new session for an owner. A live session for the same
// owner is rejected with ErrSessionActive.
func (st *sessionStore) create(sess *session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.sessions[sess.OwnerID]; exists {
		return ErrSessionActive
	}

	st.sessions[sess.OwnerID] = sess
	return nil
}

// get returns the owner's live session, or nil
func (st *sessionStore) get(ownerID string) *session {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.sessions[ownerID]
}

// remove deletes the owner's session from the map. Removing an absent owner
// is a safe no-op; the return value reports whether anything was removed.
func (st *sessionStore) remove(ownerID string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.sessions[ownerID]; !exists {
		return false
	}

	delete(st.sessions, ownerID)
	return true
}

// count returns the number of live sessions
func (st *sessionStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	return len(st.sessions)
}
