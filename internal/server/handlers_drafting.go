package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/preview"
	"github.com/jonathan/resume-studio/internal/types"
)

// Drafting actions run at most once per session+action at a time; a
// duplicate submission while one is running gets 409 instead of a second
// upstream call.
type inflightGuard struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{keys: make(map[string]bool)}
}

// claim marks the key in flight. Returns false if it already is.
func (g *inflightGuard) claim(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keys[key] {
		return false
	}
	g.keys[key] = true
	return true
}

func (g *inflightGuard) release(key string) {
	g.mu.Lock()
	delete(g.keys, key)
	g.mu.Unlock()
}

// draftKey identifies one action on one session.
func draftKey(sessionID uuid.UUID, action string) string {
	return sessionID.String() + ":" + action
}

// jobDescriptionRequest carries the target job description for drafting.
type jobDescriptionRequest struct {
	JobDescription string `json:"job_description"`
}

// checkDrafter ensures AI features are configured.
func (s *Server) checkDrafter(w http.ResponseWriter) bool {
	if s.drafter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "AI drafting is not configured")
		return false
	}
	return true
}

// claimDraft acquires the per-session+action in-flight slot.
func (s *Server) claimDraft(w http.ResponseWriter, sessionID uuid.UUID, action string) (string, bool) {
	key := draftKey(sessionID, action)
	if !s.inflight.claim(key) {
		s.errorStatus(w, &ErrActionInFlight{Action: action})
		return "", false
	}
	return key, true
}

// handleGenerate drafts a resume tailored to a job description and loads
// it into the session. The session sequence number taken before the call
// gates the apply: if a later drafting request has been accepted by the
// time the model answers, the stale draft is discarded.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok || !s.checkDrafter(w) {
		return
	}

	var req jobDescriptionRequest
	if !s.decode(w, r, &req) {
		return
	}

	key, ok := s.claimDraft(w, sessionID, "generate")
	if !ok {
		return
	}
	defer s.inflight.release(key)

	// The sequencer is keyed by session, not by action: any newer drafting
	// request on this session supersedes this one's apply step.
	seq := s.sequencer.Next(sessionID.String())

	draft, err := s.drafter.Generate(r.Context(), req.JobDescription, session.Snapshot())
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	if !s.sequencer.IsLatest(sessionID.String(), seq) {
		s.errorResponse(w, http.StatusConflict, "draft superseded by a newer request")
		return
	}

	session.Replace(draft)
	s.jsonResponse(w, http.StatusOK, sessionResponse{ID: sessionID, Resume: session.Snapshot()})
}

// handleAnalyze scores the session resume against a job description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok || !s.checkDrafter(w) {
		return
	}

	var req jobDescriptionRequest
	if !s.decode(w, r, &req) {
		return
	}

	key, ok := s.claimDraft(w, sessionID, "analyze")
	if !ok {
		return
	}
	defer s.inflight.release(key)

	report, err := s.drafter.Analyze(r.Context(), session.Snapshot(), req.JobDescription)
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// textDraftResponse returns rewritten resume text without touching the
// session; applying the text is the client's call.
type textDraftResponse struct {
	Text string `json:"text"`
}

// runTextDraft handles the shared flow of the text-returning actions.
func (s *Server) runTextDraft(w http.ResponseWriter, sessionID uuid.UUID, action string, fn func() (string, error)) {
	key, ok := s.claimDraft(w, sessionID, action)
	if !ok {
		return
	}
	defer s.inflight.release(key)

	text, err := fn()
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, textDraftResponse{Text: text})
}

// handleEnhance rewrites the session resume text with stronger wording.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok || !s.checkDrafter(w) {
		return
	}

	snapshot := session.Snapshot()
	s.runTextDraft(w, sessionID, "enhance", func() (string, error) {
		return s.drafter.Enhance(r.Context(), preview.RenderText(preview.Render(snapshot)))
	})
}

// handleRefine polishes the session resume into a formatted text version.
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok || !s.checkDrafter(w) {
		return
	}

	snapshot := session.Snapshot()
	s.runTextDraft(w, sessionID, "refine", func() (string, error) {
		return s.drafter.Refine(r.Context(), snapshot)
	})
}

// composeRequest seeds the summary composer. Fields default from the
// session resume when omitted.
type composeRequest struct {
	Name     string `json:"name"`
	LinkedIn string `json:"linkedin"`
	Talents  string `json:"talents"`
}

// handleCompose drafts a professional summary and applies it to the
// session summary field.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok || !s.checkDrafter(w) {
		return
	}

	var req composeRequest
	if !s.decode(w, r, &req) {
		return
	}

	snapshot := session.Snapshot()
	if req.Name == "" {
		req.Name = snapshot.PersonalInfo.FullName
	}
	if req.LinkedIn == "" {
		req.LinkedIn = snapshot.PersonalInfo.LinkedIn
	}
	if req.Talents == "" {
		req.Talents = strings.Join(types.NonBlank(snapshot.Skills), ", ")
	}

	key, ok := s.claimDraft(w, sessionID, "compose")
	if !ok {
		return
	}
	defer s.inflight.release(key)

	// Session-keyed like handleGenerate: a newer drafting request on this
	// session supersedes the apply.
	seq := s.sequencer.Next(sessionID.String())

	summary, err := s.drafter.Compose(r.Context(), req.Name, req.LinkedIn, req.Talents)
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	if !s.sequencer.IsLatest(sessionID.String(), seq) {
		s.errorResponse(w, http.StatusConflict, "draft superseded by a newer request")
		return
	}

	session.UpdateSummary(summary)
	s.jsonResponse(w, http.StatusOK, sessionResponse{ID: sessionID, Resume: session.Snapshot()})
}
