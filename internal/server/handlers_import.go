package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/types"
)

// importRequest pulls a public profile URL into resume form. When a
// session ID is supplied the imported resume replaces the session state.
type importRequest struct {
	URL       string     `json:"url"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
}

// handleImportLinkedIn imports a LinkedIn profile into a resume.
func (s *Server) handleImportLinkedIn(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if s.importer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Profile import is not configured")
		return
	}

	var req importRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	resume, err := s.importer.ImportResume(r.Context(), req.URL)
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	if req.SessionID != nil {
		session, err := s.sessions.Get(*req.SessionID, userID)
		if err != nil {
			s.errorStatus(w, err)
			return
		}
		session.Replace(resume)
		s.jsonResponse(w, http.StatusOK, sessionResponse{ID: *req.SessionID, Resume: session.Snapshot()})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*types.ResumeData{"resume": resume})
}

// handleSearchJobs proxies a job listing search. Identical concurrent
// queries are coalesced into one upstream request.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetUserID(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if s.jobs == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Job search is not configured")
		return
	}

	query := r.URL.Query().Get("q")
	location := r.URL.Query().Get("location")
	pageNum := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid page number")
			return
		}
		pageNum = n
	}

	key := query + "|" + location + "|" + strconv.Itoa(pageNum)
	result, err, _ := s.searchGroup.Do(key, func() (any, error) {
		return s.jobs.Search(r.Context(), query, location, pageNum)
	})
	if err != nil {
		s.errorStatus(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
