package editor

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/types"
)

// Session exclusively owns the authoritative in-memory resume during an
// editing session. Every mutation produces a new snapshot via copy-on-write,
// so clones handed to renderers are never aliased by later edits.
//
// Mutations are serialized by a mutex: the UI dispatch contract is one
// update at a time, and the mutex keeps the session safe if a caller
// violates it.
type Session struct {
	mu      sync.Mutex
	ownerID uuid.UUID
	resume  *types.ResumeData
}

// NewSession creates an editing session for the given owner, starting from
// an empty resume with placeholder rows.
func NewSession(ownerID uuid.UUID) *Session {
	return &Session{
		ownerID: ownerID,
		resume:  types.NewResumeData(),
	}
}

// OwnerID returns the identity the session was created for.
func (s *Session) OwnerID() uuid.UUID {
	return s.ownerID
}

// Snapshot returns a deep copy of the current resume. Renderers and storage
// must consume snapshots, never the live model.
func (s *Session) Snapshot() *types.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume.Clone()
}

// Replace installs a new resume wholesale, for loading a saved snapshot or
// applying an AI generation result. The input is cloned and normalized so
// the session never shares mutable state with the caller.
func (s *Session) Replace(data *types.ResumeData) {
	fresh := data.Clone()
	fresh.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = fresh
}

// Reset discards the current resume and starts a new empty one.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = types.NewResumeData()
}

// Merge applies a partial update, replacing only the top-level fields set in
// the patch.
func (s *Session) Merge(p types.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.resume.Merge(p)
	next.Normalize()
	s.resume = next
}

// mutate clones the current resume, applies fn to the clone, and swaps it in
// when fn succeeds. On error the session state is left unchanged.
func (s *Session) mutate(fn func(r *types.ResumeData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.resume.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.resume = next
	return nil
}
