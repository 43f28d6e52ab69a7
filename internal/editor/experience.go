package editor

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// Experience field names accepted by UpdateExperience.
const (
	FieldCompany   = "company"
	FieldPosition  = "position"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
)

// AddExperience appends a blank experience entry with a fresh identity
// token and returns it. Adding always succeeds.
func (s *Session) AddExperience() types.Experience {
	entry := types.NewExperience()
	_ = s.mutate(func(r *types.ResumeData) error {
		r.Experiences = append(r.Experiences, entry)
		return nil
	})
	return entry
}

// RemoveExperience removes the entry with the given identity token. The
// last remaining entry cannot be removed: repeatable sections never become
// empty during interactive editing.
func (s *Session) RemoveExperience(id string) error {
	return s.mutate(func(r *types.ResumeData) error {
		if len(r.Experiences) <= 1 {
			return &LastEntryError{Section: "experience"}
		}
		idx := experienceIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "experience", ID: id}
		}
		r.Experiences = append(r.Experiences[:idx], r.Experiences[idx+1:]...)
		return nil
	})
}

// UpdateExperience replaces one string field of one entry, addressed by
// identity token. Date fields are validated as YYYY-MM within the plausible
// year range.
func (s *Session) UpdateExperience(id, field, value string) error {
	switch field {
	case FieldStartDate, FieldEndDate:
		if err := validateYearMonth(field, value); err != nil {
			return err
		}
	case FieldCompany, FieldPosition:
		// Free-form fields.
	default:
		return &UnknownFieldError{Section: "experience", Field: field}
	}

	return s.mutate(func(r *types.ResumeData) error {
		idx := experienceIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "experience", ID: id}
		}
		exp := &r.Experiences[idx]
		switch field {
		case FieldCompany:
			exp.Company = value
		case FieldPosition:
			exp.Position = value
		case FieldStartDate:
			exp.StartDate = value
		case FieldEndDate:
			exp.EndDate = value
		}
		return nil
	})
}

// SetExperienceCurrent toggles the isCurrent flag. When set, every consumer
// ignores the stored end date and renders "Present".
func (s *Session) SetExperienceCurrent(id string, current bool) error {
	return s.mutate(func(r *types.ResumeData) error {
		idx := experienceIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "experience", ID: id}
		}
		r.Experiences[idx].IsCurrent = current
		return nil
	})
}

// AppendResponsibility adds an empty responsibility line at the end of the
// entry's list. A new empty line only appears once the current last line is
// non-empty; otherwise the call is a no-op, matching the form's behavior of
// keeping exactly one trailing blank box.
func (s *Session) AppendResponsibility(id string) error {
	return s.mutate(func(r *types.ResumeData) error {
		idx := experienceIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "experience", ID: id}
		}
		exp := &r.Experiences[idx]
		if n := len(exp.Responsibilities); n > 0 && strings.TrimSpace(exp.Responsibilities[n-1]) == "" {
			return nil
		}
		exp.Responsibilities = append(exp.Responsibilities, "")
		return nil
	})
}

// UpdateResponsibility replaces the responsibility at the given position
// within an entry. Positions inside one entry are stable between renders,
// so positional addressing is safe here.
func (s *Session) UpdateResponsibility(id string, pos int, value string) error {
	return s.mutate(func(r *types.ResumeData) error {
		idx := experienceIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "experience", ID: id}
		}
		exp := &r.Experiences[idx]
		if pos < 0 || pos >= len(exp.Responsibilities) {
			return &FieldError{Field: "responsibilities", Message: "position out of range"}
		}
		exp.Responsibilities[pos] = value
		return nil
	})
}

// RemoveResponsibility deletes the responsibility at the given position,
// keeping at least one line in the entry.
func (s *Session) RemoveResponsibility(id string, pos int) error {
	return s.mutate(func(r *types.ResumeData) error {
		idx := experienceIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "experience", ID: id}
		}
		exp := &r.Experiences[idx]
		if len(exp.Responsibilities) <= 1 {
			return &LastEntryError{Section: "responsibility"}
		}
		if pos < 0 || pos >= len(exp.Responsibilities) {
			return &FieldError{Field: "responsibilities", Message: "position out of range"}
		}
		exp.Responsibilities = append(exp.Responsibilities[:pos], exp.Responsibilities[pos+1:]...)
		return nil
	})
}

// ReorderResponsibilities moves a responsibility from one position to
// another. Order is display order and communicates emphasis.
func (s *Session) ReorderResponsibilities(id string, from, to int) error {
	return s.mutate(func(r *types.ResumeData) error {
		idx := experienceIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "experience", ID: id}
		}
		exp := &r.Experiences[idx]
		n := len(exp.Responsibilities)
		if from < 0 || from >= n || to < 0 || to >= n {
			return &FieldError{Field: "responsibilities", Message: "position out of range"}
		}
		moved := exp.Responsibilities[from]
		rest := append(exp.Responsibilities[:from], exp.Responsibilities[from+1:]...)
		rest = append(rest, "")
		copy(rest[to+1:], rest[to:])
		rest[to] = moved
		exp.Responsibilities = rest
		return nil
	})
}

func experienceIndex(r *types.ResumeData, id string) int {
	for i, exp := range r.Experiences {
		if exp.ID == id {
			return i
		}
	}
	return -1
}
