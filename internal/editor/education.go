package editor

import "github.com/jonathan/resume-studio/internal/types"

// Education field names accepted by UpdateEducation.
const (
	FieldDegree       = "degree"
	FieldInstitution  = "institution"
	FieldFieldOfStudy = "fieldOfStudy"
	FieldStartYear    = "startYear"
	FieldEndYear      = "endYear"
)

// AddEducation appends a blank education entry with a fresh identity token
// and returns it. Adding always succeeds.
func (s *Session) AddEducation() types.Education {
	entry := types.NewEducation()
	_ = s.mutate(func(r *types.ResumeData) error {
		r.Education = append(r.Education, entry)
		return nil
	})
	return entry
}

// RemoveEducation removes the entry with the given identity token, unless it
// is the last remaining entry in the section.
func (s *Session) RemoveEducation(id string) error {
	return s.mutate(func(r *types.ResumeData) error {
		if len(r.Education) <= 1 {
			return &LastEntryError{Section: "education"}
		}
		idx := educationIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "education", ID: id}
		}
		r.Education = append(r.Education[:idx], r.Education[idx+1:]...)
		return nil
	})
}

// UpdateEducation replaces one field of one entry, addressed by identity
// token. Year fields must be 4-digit years in the plausible range; a blank
// end year means the degree is ongoing or expected.
func (s *Session) UpdateEducation(id, field, value string) error {
	switch field {
	case FieldStartYear, FieldEndYear:
		if err := validateYear(field, value); err != nil {
			return err
		}
	case FieldDegree, FieldInstitution, FieldFieldOfStudy:
		// Free-form fields.
	default:
		return &UnknownFieldError{Section: "education", Field: field}
	}

	return s.mutate(func(r *types.ResumeData) error {
		idx := educationIndex(r, id)
		if idx < 0 {
			return &NotFoundError{Section: "education", ID: id}
		}
		edu := &r.Education[idx]
		switch field {
		case FieldDegree:
			edu.Degree = value
		case FieldInstitution:
			edu.Institution = value
		case FieldFieldOfStudy:
			edu.FieldOfStudy = value
		case FieldStartYear:
			edu.StartYear = value
		case FieldEndYear:
			edu.EndYear = value
		}
		return nil
	})
}

func educationIndex(r *types.ResumeData, id string) int {
	for i, edu := range r.Education {
		if edu.ID == id {
			return i
		}
	}
	return -1
}
