package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/editor"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/types"
)

// sessionResponse is the standard reply to session mutations: the full
// post-edit snapshot, so clients re-render from authoritative state.
type sessionResponse struct {
	ID     uuid.UUID         `json:"id"`
	Resume *types.ResumeData `json:"resume"`
}

// session resolves the authenticated user and the {id} path session.
// On failure it writes the error response and returns ok=false.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*editor.Session, uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil, uuid.Nil, false
	}

	session, err := s.sessions.Get(sessionID, userID)
	if err != nil {
		s.errorStatus(w, err)
		return nil, uuid.Nil, false
	}
	return session, sessionID, true
}

// decode parses a JSON request body into dst.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// mutate runs a session edit and replies with the updated snapshot.
// Failed edits leave the session untouched; the error is mapped and the
// attempt logged by errorStatus when it is server-side.
func (s *Server) mutate(w http.ResponseWriter, sessionID uuid.UUID, session *editor.Session, fn func() error) {
	if err := fn(); err != nil {
		s.errorStatus(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sessionResponse{ID: sessionID, Resume: session.Snapshot()})
}

// handleCreateSession starts an editing session, optionally seeded from a
// saved resume.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ResumeID *uuid.UUID `json:"resume_id,omitempty"`
	}
	// An empty body starts from the placeholder resume.
	_ = json.NewDecoder(r.Body).Decode(&req)

	sessionID, session := s.sessions.Create(userID)

	if req.ResumeID != nil {
		record, err := s.resumes.GetResume(r.Context(), userID, *req.ResumeID)
		if err != nil {
			s.errorStatus(w, err)
			return
		}
		if record == nil {
			s.errorResponse(w, http.StatusNotFound, "resume not found")
			return
		}
		session.Replace(record.Data)
	}

	s.jsonResponse(w, http.StatusCreated, sessionResponse{ID: sessionID, Resume: session.Snapshot()})
}

// handleDeleteSession discards an editing session. Unsaved edits are lost.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	if err := s.sessions.Delete(sessionID, userID); err != nil {
		s.errorStatus(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSessionResume returns the current resume snapshot.
func (s *Server) handleGetSessionResume(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sessionResponse{ID: sessionID, Resume: session.Snapshot()})
}

// handleMergeSessionResume merges a partial resume into the session.
func (s *Server) handleMergeSessionResume(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var patch types.Patch
	if !s.decode(w, r, &patch) {
		return
	}

	s.mutate(w, sessionID, session, func() error {
		session.Merge(patch)
		return nil
	})
}

// handleResetSession restores the placeholder resume.
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}
	s.mutate(w, sessionID, session, func() error {
		session.Reset()
		return nil
	})
}

// handleSetPersonalInfo replaces the whole personal info block.
func (s *Server) handleSetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var info types.PersonalInfo
	if !s.decode(w, r, &info) {
		return
	}

	s.mutate(w, sessionID, session, func() error {
		return session.SetPersonalInfo(info)
	})
}

// fieldUpdateRequest is a single-field edit.
type fieldUpdateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// handleUpdatePersonalField updates one personal info field.
func (s *Server) handleUpdatePersonalField(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req fieldUpdateRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mutate(w, sessionID, session, func() error {
		return session.UpdatePersonalInfo(req.Field, req.Value)
	})
}

// handleUpdateSummary replaces the professional summary.
func (s *Server) handleUpdateSummary(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	s.mutate(w, sessionID, session, func() error {
		session.UpdateSummary(req.Value)
		return nil
	})
}

// handleAddExperience appends a blank experience entry.
func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	entry := session.AddExperience()
	s.jsonResponse(w, http.StatusCreated, struct {
		ID     uuid.UUID         `json:"id"`
		Entry  types.Experience  `json:"entry"`
		Resume *types.ResumeData `json:"resume"`
	}{sessionID, entry, session.Snapshot()})
}

// handleUpdateExperience updates one field of an experience entry.
func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req fieldUpdateRequest
	if !s.decode(w, r, &req) {
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.UpdateExperience(entryID, req.Field, req.Value)
	})
}

// handleRemoveExperience deletes an experience entry. Removing the last
// entry is rejected so the form never renders empty.
func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.RemoveExperience(entryID)
	})
}

// handleSetExperienceCurrent toggles the "currently working here" flag.
func (s *Server) handleSetExperienceCurrent(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Current bool `json:"current"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.SetExperienceCurrent(entryID, req.Current)
	})
}

// handleAppendResponsibility adds an empty bullet to an experience entry.
func (s *Server) handleAppendResponsibility(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.AppendResponsibility(entryID)
	})
}

// responsibilityPos parses the {pos} path value.
func responsibilityPos(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("pos"))
}

// handleUpdateResponsibility rewrites one bullet.
func (s *Server) handleUpdateResponsibility(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	pos, err := responsibilityPos(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid position")
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.UpdateResponsibility(entryID, pos, req.Value)
	})
}

// handleRemoveResponsibility deletes one bullet.
func (s *Server) handleRemoveResponsibility(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	pos, err := responsibilityPos(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid position")
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.RemoveResponsibility(entryID, pos)
	})
}

// handleReorderResponsibilities moves a bullet within its entry.
func (s *Server) handleReorderResponsibilities(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.ReorderResponsibilities(entryID, req.From, req.To)
	})
}

// handleAddEducation appends a blank education entry.
func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	entry := session.AddEducation()
	s.jsonResponse(w, http.StatusCreated, struct {
		ID     uuid.UUID         `json:"id"`
		Entry  types.Education   `json:"entry"`
		Resume *types.ResumeData `json:"resume"`
	}{sessionID, entry, session.Snapshot()})
}

// handleUpdateEducation updates one field of an education entry.
func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req fieldUpdateRequest
	if !s.decode(w, r, &req) {
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.UpdateEducation(entryID, req.Field, req.Value)
	})
}

// handleRemoveEducation deletes an education entry.
func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	entryID := r.PathValue("entry_id")
	s.mutate(w, sessionID, session, func() error {
		return session.RemoveEducation(entryID)
	})
}

// valueRequest carries a single list value.
type valueRequest struct {
	Value string `json:"value"`
}

// handleAddSkill appends a skill.
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req valueRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mutate(w, sessionID, session, func() error {
		session.AddSkill(req.Value)
		return nil
	})
}

// handleSetSkills replaces the skill list.
func (s *Server) handleSetSkills(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Skills []string `json:"skills"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	s.mutate(w, sessionID, session, func() error {
		session.SetSkills(req.Skills)
		return nil
	})
}

// handleRemoveSkill removes a skill by value (?value= query parameter,
// since DELETE bodies are unreliable across proxies).
func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	value := r.URL.Query().Get("value")
	if value == "" {
		s.errorResponse(w, http.StatusBadRequest, "value query parameter is required")
		return
	}

	s.mutate(w, sessionID, session, func() error {
		session.RemoveSkill(value)
		return nil
	})
}

// handleAddCertification appends a certification.
func (s *Server) handleAddCertification(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	var req valueRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mutate(w, sessionID, session, func() error {
		session.AddCertification(req.Value)
		return nil
	})
}

// handleRemoveCertification removes a certification by value.
func (s *Server) handleRemoveCertification(w http.ResponseWriter, r *http.Request) {
	session, sessionID, ok := s.session(w, r)
	if !ok {
		return
	}

	value := r.URL.Query().Get("value")
	if value == "" {
		s.errorResponse(w, http.StatusBadRequest, "value query parameter is required")
		return
	}

	s.mutate(w, sessionID, session, func() error {
		session.RemoveCertification(value)
		return nil
	})
}
