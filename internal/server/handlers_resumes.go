package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/server/middleware"
)

// saveResumeRequest snapshots a session into durable storage. Supplying
// an existing resume ID overwrites that record; saving twice with the
// same ID is idempotent.
type saveResumeRequest struct {
	SessionID uuid.UUID  `json:"session_id"`
	Title     string     `json:"title"`
	ResumeID  *uuid.UUID `json:"resume_id,omitempty"`
}

// handleSaveResume stores a snapshot of the session resume.
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req saveResumeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Title == "" {
		s.errorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	session, err := s.sessions.Get(req.SessionID, userID)
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	record, err := s.resumes.SaveResume(r.Context(), userID, req.ResumeID, req.Title, session.Snapshot())
	if err != nil {
		s.errorStatus(w, err)
		return
	}
	if record == nil {
		// Update targeted an id that does not exist or belongs to someone else.
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	s.jsonResponse(w, http.StatusCreated, record)
}

// handleListResumes lists the caller's saved resumes, most recent first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summaries, err := s.resumes.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": summaries})
}

// resumeFromPath resolves the authenticated owner and {id} path resume.
func (s *Server) resumeFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, resumeID, true
}

// handleGetResume returns one saved resume with its document.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, resumeID, ok := s.resumeFromPath(w, r)
	if !ok {
		return
	}

	record, err := s.resumes.GetResume(r.Context(), userID, resumeID)
	if err != nil {
		s.errorStatus(w, err)
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteResume removes a saved resume. Deleting a missing record
// succeeds; the end state is the same.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, resumeID, ok := s.resumeFromPath(w, r)
	if !ok {
		return
	}

	if err := s.resumes.DeleteResume(r.Context(), userID, resumeID); err != nil {
		s.errorStatus(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadResume replaces a session's working resume with a saved
// snapshot.
func (s *Server) handleLoadResume(w http.ResponseWriter, r *http.Request) {
	userID, resumeID, ok := s.resumeFromPath(w, r)
	if !ok {
		return
	}

	var req struct {
		SessionID uuid.UUID `json:"session_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	session, err := s.sessions.Get(req.SessionID, userID)
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	record, err := s.resumes.GetResume(r.Context(), userID, resumeID)
	if err != nil {
		s.errorStatus(w, err)
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	session.Replace(record.Data)
	s.jsonResponse(w, http.StatusOK, sessionResponse{ID: req.SessionID, Resume: session.Snapshot()})
}
