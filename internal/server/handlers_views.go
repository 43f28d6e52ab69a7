package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/pagination"
	"github.com/jonathan/resume-studio/internal/preview"
)

// handlePreview returns the screen render tree for the session resume.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, preview.Render(session.Snapshot()))
}

// documentResponse carries the paginated layout. Overflow on the last
// page is reported, not truncated; the content is still all there.
type documentResponse struct {
	Pages     []pagination.Page `json:"pages"`
	PageCount int               `json:"page_count"`
	Overflow  bool              `json:"overflow"`
}

// handleDocument returns the print-layout pages for the session resume.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(w, r)
	if !ok {
		return
	}

	pages := pagination.NewRenderer(nil).Render(session.Snapshot())

	overflow := false
	for _, page := range pages {
		if page.Overflow {
			overflow = true
		}
	}

	s.jsonResponse(w, http.StatusOK, documentResponse{
		Pages:     pages,
		PageCount: len(pages),
		Overflow:  overflow,
	})
}

// handleExport renders the session resume to PDF and streams it back.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(w, r)
	if !ok {
		return
	}

	snapshot := session.Snapshot()
	pdf, err := s.exporter.ExportPDF(r.Context(), snapshot)
	if err != nil {
		s.errorStatus(w, fmt.Errorf("failed to export PDF: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(snapshot)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
