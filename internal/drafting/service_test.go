package drafting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// fakeClient returns canned responses and records the last request.
type fakeClient struct {
	jsonResponse string
	textResponse string
	err          error

	lastPrompt string
	lastTier   llm.ModelTier
	calls      int
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	f.lastTier = tier
	f.calls++
	return f.textResponse, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	f.lastTier = tier
	f.calls++
	return f.jsonResponse, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

const generatedResumeJSON = `{
	"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com", "phone": "555-0100", "linkedIn": "", "portfolio": ""},
	"summary": "Backend engineer focused on reliability.",
	"experiences": [
		{"company": "Acme Corp", "position": "Engineer", "startDate": "2020-01", "endDate": "", "responsibilities": ["Shipped the billing service"], "isCurrent": true}
	],
	"education": [
		{"degree": "BSc", "institution": "State University", "fieldOfStudy": "CS", "startYear": "2012", "endYear": "2016"}
	],
	"skills": ["Go"],
	"certifications": []
}`

func TestGenerate_Success(t *testing.T) {
	client := &fakeClient{jsonResponse: generatedResumeJSON}
	svc := NewService(client)

	existing := types.NewResumeData()
	resume, err := svc.Generate(context.Background(), "Senior Go engineer at a fintech", existing)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resume.PersonalInfo.FullName)
	require.Len(t, resume.Experiences, 1)
	assert.Equal(t, "Acme Corp", resume.Experiences[0].Company)
	assert.NotEmpty(t, resume.Experiences[0].ID, "entries must get identity tokens")

	assert.Equal(t, llm.TierAdvanced, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Senior Go engineer at a fintech")
	assert.NotContains(t, client.lastPrompt, "{{.")
}

func TestGenerate_TransportError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	svc := NewService(client)

	_, err := svc.Generate(context.Background(), "any job", types.NewResumeData())
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ActionGenerate, svcErr.Action)
}

func TestGenerate_SchemaMismatch(t *testing.T) {
	// responsibilities must be an array
	client := &fakeClient{jsonResponse: `{
		"personalInfo": {"fullName": "Jane"},
		"summary": "ok",
		"experiences": [{"company": "Acme", "position": "Dev", "responsibilities": "one big string"}],
		"education": [],
		"skills": []
	}`}
	svc := NewService(client)

	_, err := svc.Generate(context.Background(), "any job", types.NewResumeData())
	require.Error(t, err)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.NotEmpty(t, malformed.Raw)
}

func TestGenerate_NotJSON(t *testing.T) {
	client := &fakeClient{jsonResponse: "Sorry, I cannot help with that."}
	svc := NewService(client)

	_, err := svc.Generate(context.Background(), "any job", types.NewResumeData())
	require.Error(t, err)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestAnalyze_Success(t *testing.T) {
	client := &fakeClient{jsonResponse: `{
		"score": 74,
		"strengths": ["Clear chronology"],
		"improvements": [{"section": "summary", "message": "Generic", "priority": "medium", "suggestion": "Name the target role"}],
		"atsCompatibility": {"score": 88, "issues": [], "suggestions": []},
		"keywordMatch": {"matched": ["Go"], "missing": ["gRPC"]}
	}`}
	svc := NewService(client)

	report, err := svc.Analyze(context.Background(), types.NewResumeData(), "Go developer role")
	require.NoError(t, err)

	assert.Equal(t, 74, report.Score)
	require.Len(t, report.Improvements, 1)
	assert.Equal(t, "medium", report.Improvements[0].Priority)
	assert.Contains(t, client.lastPrompt, "Go developer role")
}

func TestAnalyze_BlankJobDescriptionUsesGeneralReview(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"score": 50, "strengths": [], "improvements": []}`}
	svc := NewService(client)

	_, err := svc.Analyze(context.Background(), types.NewResumeData(), "   ")
	require.NoError(t, err)

	assert.Contains(t, client.lastPrompt, "No job description provided")
}

func TestCompose_DefaultsLinkedIn(t *testing.T) {
	client := &fakeClient{textResponse: "JANE DOE\nSummary..."}
	svc := NewService(client)

	text, err := svc.Compose(context.Background(), "Jane Doe", "", "Plays jazz piano, manages teams")
	require.NoError(t, err)

	assert.Equal(t, "JANE DOE\nSummary...", text)
	assert.Contains(t, client.lastPrompt, "Not provided")
	assert.Contains(t, client.lastPrompt, "Plays jazz piano")
	assert.Equal(t, llm.TierStandard, client.lastTier)
}

func TestCompose_EmptyResponse(t *testing.T) {
	client := &fakeClient{textResponse: "   "}
	svc := NewService(client)

	_, err := svc.Compose(context.Background(), "Jane", "", "talents")
	require.Error(t, err)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestComposeFromProfile(t *testing.T) {
	client := &fakeClient{textResponse: "resume text"}
	svc := NewService(client)

	profile := &types.ImportedProfile{
		FullName: "Jane Doe",
		Headline: "Staff Engineer",
		Experiences: []types.ImportedExperience{
			{Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "", Bullets: []string{"Built things"}},
		},
		Skills: []string{"Go", "SQL"},
	}

	_, err := svc.ComposeFromProfile(context.Background(), profile)
	require.NoError(t, err)

	assert.Contains(t, client.lastPrompt, "Staff Engineer")
	assert.Contains(t, client.lastPrompt, "2020-01 - Present")
	assert.Contains(t, client.lastPrompt, "Go, SQL")
}

func TestEnhance_PassesText(t *testing.T) {
	client := &fakeClient{textResponse: "Enhanced resume"}
	svc := NewService(client)

	text, err := svc.Enhance(context.Background(), "jane doe. did some stuff at acme.")
	require.NoError(t, err)

	assert.Equal(t, "Enhanced resume", text)
	assert.Contains(t, client.lastPrompt, "did some stuff at acme")
}

func TestRefine_FormatsStructuredModel(t *testing.T) {
	client := &fakeClient{textResponse: "refined"}
	svc := NewService(client)

	resume := types.NewResumeData()
	resume.PersonalInfo.FullName = "Jane Doe"
	resume.PersonalInfo.Email = "jane@example.com"
	resume.Summary = "Engineer."
	resume.Experiences[0].Company = "Acme"
	resume.Experiences[0].Position = "Engineer"
	resume.Experiences[0].StartDate = "2020-01"
	resume.Experiences[0].IsCurrent = true
	resume.Experiences[0].Responsibilities = []string{"Led the platform team"}
	resume.Skills = []string{"Go", "Postgres"}

	_, err := svc.Refine(context.Background(), resume)
	require.NoError(t, err)

	assert.Contains(t, client.lastPrompt, "Jane Doe")
	assert.Contains(t, client.lastPrompt, "jane@example.com")
	assert.Contains(t, client.lastPrompt, "Led the platform team")
	assert.Contains(t, client.lastPrompt, "Go, Postgres")
	// Empty placeholder education rows must not leak into the prompt.
	assert.NotContains(t, client.lastPrompt, "Degree: \n")
}

func TestSequencer(t *testing.T) {
	seq := NewSequencer()

	first := seq.Next("session-1/generate")
	second := seq.Next("session-1/generate")
	other := seq.Next("session-2/generate")

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
	assert.Equal(t, uint64(1), other, "keys are sequenced independently")

	assert.False(t, seq.IsLatest("session-1/generate", first))
	assert.True(t, seq.IsLatest("session-1/generate", second))
	assert.True(t, seq.IsLatest("session-2/generate", other))
}
