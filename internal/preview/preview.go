// Package preview renders a resume into a continuously flowing visual tree
// for on-screen display. Rendering is a pure function of an immutable
// snapshot: it never mutates its input and is safe to call concurrently.
package preview

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// Section titles are the canonical names from the types package so the
// screen and paginated renderers stay consistent.
const (
	TitleSummary        = types.SectionSummary
	TitleExperience     = types.SectionExperience
	TitleEducation      = types.SectionEducation
	TitleSkills         = types.SectionSkills
	TitleCertifications = types.SectionCertifications
)

// Document is the rendered visual tree: a header followed by the sections
// that have visible content. Empty sections are omitted entirely, headers
// included.
type Document struct {
	Name     string    `json:"name"`
	Contact  string    `json:"contact"`
	Sections []Section `json:"sections"`
}

// Section is one titled region of the document. Exactly one of Paragraph,
// Entries, Tags, or Items is populated, depending on the section kind.
type Section struct {
	Title     string   `json:"title"`
	Paragraph string   `json:"paragraph,omitempty"`
	Entries   []Entry  `json:"entries,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Items     []string `json:"items,omitempty"`
}

// Entry is one dated block within the experience or education sections.
type Entry struct {
	Heading   string   `json:"heading"`
	Subtitle  string   `json:"subtitle,omitempty"`
	DateRange string   `json:"dateRange"`
	Bullets   []string `json:"bullets,omitempty"`
}

// Render produces the on-screen document for a resume snapshot.
func Render(r *types.ResumeData) *Document {
	doc := &Document{
		Name:    strings.TrimSpace(r.PersonalInfo.FullName),
		Contact: r.PersonalInfo.ContactLine(),
	}

	if r.HasSummary() {
		doc.Sections = append(doc.Sections, Section{
			Title:     TitleSummary,
			Paragraph: strings.TrimSpace(r.Summary),
		})
	}

	if r.HasExperiences() {
		section := Section{Title: TitleExperience}
		for _, exp := range r.Experiences {
			if exp.IsEmpty() {
				continue
			}
			section.Entries = append(section.Entries, Entry{
				Heading:   exp.Position,
				Subtitle:  exp.Company,
				DateRange: exp.DateRange(),
				Bullets:   types.NonBlank(exp.Responsibilities),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}

	if r.HasEducation() {
		section := Section{Title: TitleEducation}
		for _, edu := range r.Education {
			if edu.IsEmpty() {
				continue
			}
			section.Entries = append(section.Entries, Entry{
				Heading:   edu.Degree,
				Subtitle:  edu.InstitutionLine(),
				DateRange: edu.YearRange(),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}

	if skills := types.NonBlank(r.Skills); len(skills) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Title: TitleSkills,
			Tags:  skills,
		})
	}

	if certs := types.NonBlank(r.Certifications); len(certs) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Title: TitleCertifications,
			Items: certs,
		})
	}

	return doc
}

