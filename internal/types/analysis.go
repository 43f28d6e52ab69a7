package types

// AnalysisReport represents the AI reviewer's assessment of a resume,
// optionally scored against a target job description.
type AnalysisReport struct {
	Score            int              `json:"score"` // 0-100
	Strengths        []string         `json:"strengths"`
	Improvements     []Improvement    `json:"improvements"`
	ATSCompatibility ATSCompatibility `json:"atsCompatibility"`
	KeywordMatch     KeywordMatch     `json:"keywordMatch"`
}

// Improvement represents one prioritized suggestion tied to a resume section.
type Improvement struct {
	Section    string `json:"section"`
	Message    string `json:"message"`
	Priority   string `json:"priority"` // high, medium, low
	Suggestion string `json:"suggestion"`
}

// ATSCompatibility represents how well machine-parsed resume text would
// survive automated keyword filtering.
type ATSCompatibility struct {
	Score       int      `json:"score"` // 0-100
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// KeywordMatch lists job-description keywords found in and missing from the resume.
type KeywordMatch struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}
