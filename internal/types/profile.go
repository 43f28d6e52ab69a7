package types

import "strings"

// ImportedProfile is the intermediate form of a scraped public profile,
// before conversion into ResumeData. Field names follow the extraction
// output contract.
type ImportedProfile struct {
	FullName       string                `json:"full_name"`
	Headline       string                `json:"headline"`
	Location       string                `json:"location"`
	About          string                `json:"about"`
	Experiences    []ImportedExperience  `json:"experiences"`
	Education      []ImportedEducation   `json:"education"`
	Skills         []string              `json:"skills"`
	Certifications []string              `json:"certifications"`
}

// ImportedExperience is one position from a scraped profile.
type ImportedExperience struct {
	Company   string   `json:"company"`
	Position  string   `json:"position"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Bullets   []string `json:"bullets"`
}

// ImportedEducation is one education entry from a scraped profile.
type ImportedEducation struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartYear    string `json:"start_year"`
	EndYear      string `json:"end_year"`
}

// ToResumeData converts an imported profile into an editable resume.
// Empty sections fall back to the editor's placeholder rows.
func (p *ImportedProfile) ToResumeData() *ResumeData {
	r := NewResumeData()
	r.PersonalInfo.FullName = strings.TrimSpace(p.FullName)
	r.Summary = strings.TrimSpace(p.About)

	if len(p.Experiences) > 0 {
		r.Experiences = make([]Experience, 0, len(p.Experiences))
		for _, exp := range p.Experiences {
			bullets := NonBlank(exp.Bullets)
			if len(bullets) == 0 {
				bullets = []string{""}
			}
			r.Experiences = append(r.Experiences, Experience{
				ID:               NewID(),
				Company:          strings.TrimSpace(exp.Company),
				Position:         strings.TrimSpace(exp.Position),
				StartDate:        strings.TrimSpace(exp.StartDate),
				EndDate:          strings.TrimSpace(exp.EndDate),
				Responsibilities: bullets,
				IsCurrent:        strings.TrimSpace(exp.EndDate) == "",
			})
		}
	}

	if len(p.Education) > 0 {
		r.Education = make([]Education, 0, len(p.Education))
		for _, edu := range p.Education {
			r.Education = append(r.Education, Education{
				ID:           NewID(),
				Degree:       strings.TrimSpace(edu.Degree),
				Institution:  strings.TrimSpace(edu.Institution),
				FieldOfStudy: strings.TrimSpace(edu.FieldOfStudy),
				StartYear:    strings.TrimSpace(edu.StartYear),
				EndYear:      strings.TrimSpace(edu.EndYear),
			})
		}
	}

	if skills := NonBlank(p.Skills); len(skills) > 0 {
		r.Skills = skills
	}
	if certs := NonBlank(p.Certifications); len(certs) > 0 {
		r.Certifications = certs
	}

	r.Normalize()
	return r
}
