// Package types provides type definitions for structured data used throughout the resume-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/google/uuid"
)

// PersonalInfo represents the candidate's contact details.
// Optional fields left blank are omitted by renderers, never shown as placeholders.
type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedIn"`
	Portfolio string `json:"portfolio"`
}

// Experience represents one work history entry.
// ID is a stable identity token assigned at creation and unique within the
// owning resume; update and remove operations address entries by it, never
// by position.
type Experience struct {
	ID               string   `json:"id"`
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	StartDate        string   `json:"startDate"` // YYYY-MM
	EndDate          string   `json:"endDate"`   // YYYY-MM; ignored when IsCurrent
	Responsibilities []string `json:"responsibilities"`
	IsCurrent        bool     `json:"isCurrent"`
}

// Education represents one education entry.
// EndYear may be blank for an ongoing or expected degree.
type Education struct {
	ID           string `json:"id"`
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    string `json:"startYear"`
	EndYear      string `json:"endYear"`
}

// ResumeData is the canonical structured record of a candidate's profile.
// Slice order is display order; the editor, not the renderers, decides it.
type ResumeData struct {
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	Summary        string       `json:"summary"`
	Experiences    []Experience `json:"experiences"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
}

// Patch describes a partial ResumeData for merge operations.
// Nil fields are left untouched; set fields replace the whole top-level
// value (replacing Experiences replaces the list, not a per-item merge).
type Patch struct {
	PersonalInfo   *PersonalInfo `json:"personalInfo,omitempty"`
	Summary        *string       `json:"summary,omitempty"`
	Experiences    []Experience  `json:"experiences,omitempty"`
	Education      []Education   `json:"education,omitempty"`
	Skills         []string      `json:"skills,omitempty"`
	Certifications []string      `json:"certifications,omitempty"`
}

// NewID returns a fresh identity token for a repeatable-section entry.
func NewID() string {
	return uuid.NewString()
}

// NewExperience returns a blank experience entry with a fresh identity token
// and a single empty responsibility line ready for editing.
func NewExperience() Experience {
	return Experience{
		ID:               NewID(),
		Responsibilities: []string{""},
	}
}

// NewEducation returns a blank education entry with a fresh identity token.
func NewEducation() Education {
	return Education{ID: NewID()}
}

// NewResumeData returns an empty resume ready for manual entry: one
// placeholder experience and education entry each, so forms always have at
// least one row to edit.
func NewResumeData() *ResumeData {
	return &ResumeData{
		Experiences:    []Experience{NewExperience()},
		Education:      []Education{NewEducation()},
		Skills:         []string{""},
		Certifications: []string{""},
	}
}

// Clone returns a deep copy. Renderers and storage receive clones so no
// consumer can alias the live editing session's slices.
func (r *ResumeData) Clone() *ResumeData {
	if r == nil {
		return nil
	}
	out := &ResumeData{
		PersonalInfo:   r.PersonalInfo,
		Summary:        r.Summary,
		Experiences:    make([]Experience, len(r.Experiences)),
		Education:      append([]Education(nil), r.Education...),
		Skills:         append([]string(nil), r.Skills...),
		Certifications: append([]string(nil), r.Certifications...),
	}
	for i, exp := range r.Experiences {
		exp.Responsibilities = append([]string(nil), exp.Responsibilities...)
		out.Experiences[i] = exp
	}
	return out
}

// Merge returns a new ResumeData with only the fields set in the patch
// replaced. The receiver is not modified.
func (r *ResumeData) Merge(p Patch) *ResumeData {
	out := r.Clone()
	if p.PersonalInfo != nil {
		out.PersonalInfo = *p.PersonalInfo
	}
	if p.Summary != nil {
		out.Summary = *p.Summary
	}
	if p.Experiences != nil {
		out.Experiences = cloneExperiences(p.Experiences)
	}
	if p.Education != nil {
		out.Education = append([]Education(nil), p.Education...)
	}
	if p.Skills != nil {
		out.Skills = append([]string(nil), p.Skills...)
	}
	if p.Certifications != nil {
		out.Certifications = append([]string(nil), p.Certifications...)
	}
	return out
}

// Normalize repairs a resume loaded from external data so it satisfies the
// editing invariants: repeatable sections get a placeholder row when empty,
// entries missing identity tokens get fresh ones, and nil slices become
// editable single-row slices.
func (r *ResumeData) Normalize() {
	if len(r.Experiences) == 0 {
		r.Experiences = []Experience{NewExperience()}
	}
	for i := range r.Experiences {
		if r.Experiences[i].ID == "" {
			r.Experiences[i].ID = NewID()
		}
		if len(r.Experiences[i].Responsibilities) == 0 {
			r.Experiences[i].Responsibilities = []string{""}
		}
	}
	if len(r.Education) == 0 {
		r.Education = []Education{NewEducation()}
	}
	for i := range r.Education {
		if r.Education[i].ID == "" {
			r.Education[i].ID = NewID()
		}
	}
	if len(r.Skills) == 0 {
		r.Skills = []string{""}
	}
	if len(r.Certifications) == 0 {
		r.Certifications = []string{""}
	}
}

// DateRange formats the entry's display range. A current position, or one
// whose end date is blank, renders as "Present" regardless of the stored
// end date value.
func (e Experience) DateRange() string {
	end := e.EndDate
	if e.IsCurrent || strings.TrimSpace(end) == "" {
		end = "Present"
	}
	return e.StartDate + " – " + end
}

// IsEmpty reports whether every field of the experience is blank after trimming.
func (e Experience) IsEmpty() bool {
	if strings.TrimSpace(e.Company) != "" || strings.TrimSpace(e.Position) != "" {
		return false
	}
	if strings.TrimSpace(e.StartDate) != "" || strings.TrimSpace(e.EndDate) != "" {
		return false
	}
	for _, resp := range e.Responsibilities {
		if strings.TrimSpace(resp) != "" {
			return false
		}
	}
	return true
}

// YearRange formats the education display range; a blank end year means the
// degree is ongoing or expected.
func (e Education) YearRange() string {
	end := e.EndYear
	if strings.TrimSpace(end) == "" {
		end = "Present"
	}
	return e.StartYear + " – " + end
}

// IsEmpty reports whether every field of the education entry is blank after trimming.
func (e Education) IsEmpty() bool {
	return strings.TrimSpace(e.Degree) == "" &&
		strings.TrimSpace(e.Institution) == "" &&
		strings.TrimSpace(e.FieldOfStudy) == "" &&
		strings.TrimSpace(e.StartYear) == "" &&
		strings.TrimSpace(e.EndYear) == ""
}

// HasSummary reports whether the summary holds visible content.
func (r *ResumeData) HasSummary() bool {
	return strings.TrimSpace(r.Summary) != ""
}

// HasExperiences reports whether any experience entry holds visible content.
func (r *ResumeData) HasExperiences() bool {
	for _, exp := range r.Experiences {
		if !exp.IsEmpty() {
			return true
		}
	}
	return false
}

// HasEducation reports whether any education entry holds visible content.
func (r *ResumeData) HasEducation() bool {
	for _, edu := range r.Education {
		if !edu.IsEmpty() {
			return true
		}
	}
	return false
}

// NonBlank returns the entries of a string list with visible content,
// preserving order. Used for skills and certifications, where blank form
// rows are not part of the rendered resume.
func NonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func cloneExperiences(in []Experience) []Experience {
	out := make([]Experience, len(in))
	for i, exp := range in {
		exp.Responsibilities = append([]string(nil), exp.Responsibilities...)
		out[i] = exp
	}
	return out
}
