package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/editor"
)

// SessionRegistry tracks live editing sessions by ID. Sessions are
// in-memory only; durability comes from the saved-resume endpoints.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*editor.Session
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*editor.Session),
	}
}

// Create starts a new editing session for the owner and returns its ID.
func (r *SessionRegistry) Create(ownerID uuid.UUID) (uuid.UUID, *editor.Session) {
	id := uuid.New()
	session := editor.NewSession(ownerID)

	r.mu.Lock()
	r.sessions[id] = session
	r.mu.Unlock()

	return id, session
}

// Get returns the session with the given ID. A session owned by a
// different user is reported as not found rather than forbidden, so the
// response does not confirm the ID exists.
func (r *SessionRegistry) Get(id, ownerID uuid.UUID) (*editor.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok || session.OwnerID() != ownerID {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	return session, nil
}

// Delete removes the session with the given ID.
func (r *SessionRegistry) Delete(id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok || session.OwnerID() != ownerID {
		return &ErrSessionNotFound{SessionID: id}
	}
	delete(r.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
