package export

import (
	"context"
	"strings"

	"github.com/jonathan/resume-studio/internal/pagination"
	"github.com/jonathan/resume-studio/internal/types"
)

// Service exports resumes as downloadable PDF documents.
type Service struct {
	layout *pagination.Renderer
	pdf    *PDFRenderer
}

// NewService creates an export service. A nil layout renderer selects the
// default font metrics.
func NewService(layout *pagination.Renderer, pdf *PDFRenderer) *Service {
	if layout == nil {
		layout = pagination.NewRenderer(nil)
	}
	return &Service{layout: layout, pdf: pdf}
}

// ExportPDF lays out the resume, renders it to HTML, and prints it to PDF.
// Overflowing content is exported as-is; overflow is cosmetic, not an error.
func (s *Service) ExportPDF(ctx context.Context, resume *types.ResumeData) ([]byte, error) {
	pages := s.layout.Render(resume)

	html, err := RenderHTML(pages)
	if err != nil {
		return nil, err
	}

	return s.pdf.RenderHTMLToPDF(ctx, html)
}

// Filename returns the download name for an exported resume.
func Filename(resume *types.ResumeData) string {
	name := strings.TrimSpace(resume.PersonalInfo.FullName)
	if name == "" {
		return "resume.pdf"
	}
	return name + ".pdf"
}
