package editor

import "github.com/jonathan/resume-studio/internal/types"

// Personal info field names accepted by UpdatePersonalInfo. They match the
// wire-format JSON keys so UI wiring needs no translation.
const (
	FieldFullName  = "fullName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldLinkedIn  = "linkedIn"
	FieldPortfolio = "portfolio"
)

// UpdatePersonalInfo replaces one personal-info field. Validation failures
// are field-scoped: a rejected value leaves the field, and the rest of the
// form, unchanged.
func (s *Session) UpdatePersonalInfo(field, value string) error {
	switch field {
	case FieldEmail:
		if err := validateEmail(value); err != nil {
			return err
		}
	case FieldLinkedIn, FieldPortfolio:
		if err := validateURL(field, value); err != nil {
			return err
		}
	case FieldFullName, FieldPhone:
		// Free-form fields.
	default:
		return &UnknownFieldError{Section: "personal info", Field: field}
	}

	return s.mutate(func(r *types.ResumeData) error {
		switch field {
		case FieldFullName:
			r.PersonalInfo.FullName = value
		case FieldEmail:
			r.PersonalInfo.Email = value
		case FieldPhone:
			r.PersonalInfo.Phone = value
		case FieldLinkedIn:
			r.PersonalInfo.LinkedIn = value
		case FieldPortfolio:
			r.PersonalInfo.Portfolio = value
		}
		return nil
	})
}

// SetPersonalInfo replaces the whole personal info block after validating
// every constrained field. Used by the personal info form's save action.
func (s *Session) SetPersonalInfo(info types.PersonalInfo) error {
	if err := validateEmail(info.Email); err != nil {
		return err
	}
	if err := validateURL(FieldLinkedIn, info.LinkedIn); err != nil {
		return err
	}
	if err := validateURL(FieldPortfolio, info.Portfolio); err != nil {
		return err
	}
	return s.mutate(func(r *types.ResumeData) error {
		r.PersonalInfo = info
		return nil
	})
}
