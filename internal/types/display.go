package types

import "strings"

// Canonical section names. Both renderers use these as headers, and the AI
// analysis report references sections by the same names.
const (
	SectionSummary        = "Summary"
	SectionExperience     = "Experience"
	SectionEducation      = "Education"
	SectionSkills         = "Skills"
	SectionCertifications = "Certifications"
)

// ContactSeparator joins the present contact fields in both renderers.
const ContactSeparator = " • "

// ContactLine concatenates the present personal-info fields with a
// separator, skipping absent ones so no dangling separators appear. Shared
// by the screen and paginated renderers so the contact row reads the same
// everywhere.
func (p PersonalInfo) ContactLine() string {
	var parts []string
	for _, field := range []string{p.Email, p.Phone, p.LinkedIn, p.Portfolio} {
		if strings.TrimSpace(field) != "" {
			parts = append(parts, strings.TrimSpace(field))
		}
	}
	return strings.Join(parts, ContactSeparator)
}

// InstitutionLine formats the institution row of an education entry,
// appending the field of study when present.
func (e Education) InstitutionLine() string {
	line := strings.TrimSpace(e.Institution)
	if field := strings.TrimSpace(e.FieldOfStudy); field != "" {
		if line != "" {
			line += ", "
		}
		line += field
	}
	return line
}
