package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeData_PlaceholderRows(t *testing.T) {
	r := NewResumeData()

	require.Len(t, r.Experiences, 1)
	require.Len(t, r.Education, 1)
	assert.NotEmpty(t, r.Experiences[0].ID)
	assert.NotEmpty(t, r.Education[0].ID)
	assert.Equal(t, []string{""}, r.Experiences[0].Responsibilities)
	assert.Equal(t, []string{""}, r.Skills)
	assert.Equal(t, []string{""}, r.Certifications)
}

func TestNewResumeData_UniqueTokens(t *testing.T) {
	a := NewResumeData()
	b := NewResumeData()
	assert.NotEqual(t, a.Experiences[0].ID, b.Experiences[0].ID)
	assert.NotEqual(t, a.Education[0].ID, b.Education[0].ID)
}

func TestClone_DeepCopy(t *testing.T) {
	original := NewResumeData()
	original.Experiences[0].Responsibilities = []string{"Built X"}
	original.Skills = []string{"Go"}

	clone := original.Clone()
	clone.Experiences[0].Responsibilities[0] = "changed"
	clone.Skills[0] = "changed"
	clone.PersonalInfo.FullName = "changed"

	assert.Equal(t, "Built X", original.Experiences[0].Responsibilities[0])
	assert.Equal(t, "Go", original.Skills[0])
	assert.Empty(t, original.PersonalInfo.FullName)
}

func TestMerge_ReplacesOnlySetFields(t *testing.T) {
	r := NewResumeData()
	r.Summary = "old summary"
	r.Skills = []string{"Go", "SQL"}

	summary := "new summary"
	merged := r.Merge(Patch{Summary: &summary})

	assert.Equal(t, "new summary", merged.Summary)
	assert.Equal(t, []string{"Go", "SQL"}, merged.Skills)
	assert.Equal(t, "old summary", r.Summary, "receiver must not change")
}

func TestMerge_ExperiencesAreWholeListReplace(t *testing.T) {
	r := NewResumeData()
	r.Experiences = []Experience{
		{ID: "a", Company: "Acme"},
		{ID: "b", Company: "Globex"},
	}

	merged := r.Merge(Patch{Experiences: []Experience{{ID: "c", Company: "Initech"}}})

	require.Len(t, merged.Experiences, 1)
	assert.Equal(t, "Initech", merged.Experiences[0].Company)
	assert.Len(t, r.Experiences, 2)
}

func TestNormalize_RepairsEmptySections(t *testing.T) {
	r := &ResumeData{}
	r.Normalize()

	require.Len(t, r.Experiences, 1)
	require.Len(t, r.Education, 1)
	assert.NotEmpty(t, r.Experiences[0].ID)
	assert.Equal(t, []string{""}, r.Experiences[0].Responsibilities)
	assert.Equal(t, []string{""}, r.Skills)
	assert.Equal(t, []string{""}, r.Certifications)
}

func TestNormalize_AssignsMissingTokens(t *testing.T) {
	r := &ResumeData{
		Experiences: []Experience{{Company: "Acme", Responsibilities: []string{"Built X"}}},
		Education:   []Education{{Institution: "State University"}},
	}
	r.Normalize()

	assert.NotEmpty(t, r.Experiences[0].ID)
	assert.NotEmpty(t, r.Education[0].ID)
	assert.Equal(t, "Acme", r.Experiences[0].Company)
}

func TestExperienceDateRange(t *testing.T) {
	tests := []struct {
		name string
		exp  Experience
		want string
	}{
		{
			name: "current position ignores stored end date",
			exp:  Experience{StartDate: "2020-01", EndDate: "2022-06", IsCurrent: true},
			want: "2020-01 – Present",
		},
		{
			name: "blank end date degrades to Present",
			exp:  Experience{StartDate: "2020-01", EndDate: ""},
			want: "2020-01 – Present",
		},
		{
			name: "completed position",
			exp:  Experience{StartDate: "2018-05", EndDate: "2019-11"},
			want: "2018-05 – 2019-11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.exp.DateRange())
		})
	}
}

func TestEducationYearRange(t *testing.T) {
	assert.Equal(t, "2016 – 2020", Education{StartYear: "2016", EndYear: "2020"}.YearRange())
	assert.Equal(t, "2021 – Present", Education{StartYear: "2021"}.YearRange())
}

func TestExperienceIsEmpty(t *testing.T) {
	assert.True(t, Experience{ID: "x", Responsibilities: []string{" ", ""}}.IsEmpty())
	assert.False(t, Experience{ID: "x", Company: "Acme"}.IsEmpty())
	assert.False(t, Experience{ID: "x", Responsibilities: []string{"Built X"}}.IsEmpty())
}

func TestEducationIsEmpty(t *testing.T) {
	assert.True(t, Education{ID: "x"}.IsEmpty())
	assert.False(t, Education{ID: "x", Degree: "B.S."}.IsEmpty())
}

func TestNonBlank(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, NonBlank([]string{"", "Go", "  ", "SQL"}))
	assert.Nil(t, NonBlank([]string{"", "  "}))
}
