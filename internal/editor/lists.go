package editor

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// AddSkill appends a trimmed skill. Duplicates are discouraged but not
// forbidden in the model; the form drops them to keep the tag list tidy.
// Blank input is ignored.
func (s *Session) AddSkill(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	_ = s.mutate(func(r *types.ResumeData) error {
		for _, existing := range r.Skills {
			if existing == value {
				return nil
			}
		}
		if len(r.Skills) == 1 && strings.TrimSpace(r.Skills[0]) == "" {
			r.Skills[0] = value
			return nil
		}
		r.Skills = append(r.Skills, value)
		return nil
	})
}

// RemoveSkill deletes the first occurrence of the given skill. Removing the
// final visible skill leaves the section's single blank form row in place.
func (s *Session) RemoveSkill(value string) {
	_ = s.mutate(func(r *types.ResumeData) error {
		for i, existing := range r.Skills {
			if existing == value {
				r.Skills = append(r.Skills[:i], r.Skills[i+1:]...)
				break
			}
		}
		if len(r.Skills) == 0 {
			r.Skills = []string{""}
		}
		return nil
	})
}

// SetSkills replaces the whole skill list, keeping a blank form row when the
// new list is empty.
func (s *Session) SetSkills(skills []string) {
	_ = s.mutate(func(r *types.ResumeData) error {
		r.Skills = append([]string(nil), skills...)
		if len(r.Skills) == 0 {
			r.Skills = []string{""}
		}
		return nil
	})
}

// AddCertification appends a trimmed certification, ignoring blanks and
// duplicates the same way AddSkill does.
func (s *Session) AddCertification(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	_ = s.mutate(func(r *types.ResumeData) error {
		for _, existing := range r.Certifications {
			if existing == value {
				return nil
			}
		}
		if len(r.Certifications) == 1 && strings.TrimSpace(r.Certifications[0]) == "" {
			r.Certifications[0] = value
			return nil
		}
		r.Certifications = append(r.Certifications, value)
		return nil
	})
}

// RemoveCertification deletes the first occurrence of the given
// certification, keeping the blank form row when the list empties.
func (s *Session) RemoveCertification(value string) {
	_ = s.mutate(func(r *types.ResumeData) error {
		for i, existing := range r.Certifications {
			if existing == value {
				r.Certifications = append(r.Certifications[:i], r.Certifications[i+1:]...)
				break
			}
		}
		if len(r.Certifications) == 0 {
			r.Certifications = []string{""}
		}
		return nil
	})
}

// UpdateSummary replaces the professional summary.
func (s *Session) UpdateSummary(value string) {
	_ = s.mutate(func(r *types.ResumeData) error {
		r.Summary = value
		return nil
	})
}
