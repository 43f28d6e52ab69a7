package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/llm"
)

type fakeClient struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

const extractedProfileJSON = `{
	"full_name": "Jane Doe",
	"headline": "Senior Engineer at Acme",
	"location": "Lisbon, Portugal",
	"about": "Backend engineer focused on reliability.",
	"experiences": [
		{"company": "Acme Corp", "position": "Senior Engineer", "start_date": "2020-03", "end_date": "", "bullets": ["Led the payments team"]}
	],
	"education": [
		{"institution": "State University", "degree": "BSc", "field_of_study": "CS", "start_year": "2010", "end_year": "2014"}
	],
	"skills": ["Go", "PostgreSQL"],
	"certifications": []
}`

// profilePage is long enough that the browser fallback never triggers.
func profilePage() string {
	return `<html><body>
		<nav>Home Jobs Messaging</nav>
		<main>
			<h1>Jane Doe</h1>
			<p>Senior Engineer at Acme</p>
			<section>` + strings.Repeat("Backend engineer focused on reliability. ", 20) + `</section>
		</main>
		<footer>About Accessibility</footer>
	</body></html>`
}

func TestImportProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(profilePage()))
	}))
	defer server.Close()

	client := &fakeClient{response: extractedProfileJSON}
	svc := NewService(client, "", false)

	profile, err := svc.ImportProfile(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", profile.FullName)
	require.Len(t, profile.Experiences, 1)
	assert.Equal(t, "Acme Corp", profile.Experiences[0].Company)

	// Page chrome must not reach the extraction prompt
	assert.Contains(t, client.lastPrompt, "Jane Doe")
	assert.NotContains(t, client.lastPrompt, "Home Jobs Messaging")
}

func TestImportResume_ConvertsProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(profilePage()))
	}))
	defer server.Close()

	svc := NewService(&fakeClient{response: extractedProfileJSON}, "", false)

	resume, err := svc.ImportResume(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resume.PersonalInfo.FullName)
	require.Len(t, resume.Experiences, 1)
	assert.True(t, resume.Experiences[0].IsCurrent, "blank end date marks a current position")
	assert.NotEmpty(t, resume.Experiences[0].ID)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, resume.Skills)
}

func TestImportProfile_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := NewService(&fakeClient{response: extractedProfileJSON}, "", false)

	_, err := svc.ImportProfile(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "403")
}

func TestImportProfile_InvalidURL(t *testing.T) {
	svc := NewService(&fakeClient{}, "", false)

	_, err := svc.ImportProfile(context.Background(), "not-a-valid-url")
	require.Error(t, err)

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestImportProfile_MalformedExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(profilePage()))
	}))
	defer server.Close()

	svc := NewService(&fakeClient{response: "I could not find a profile."}, "", false)

	_, err := svc.ImportProfile(context.Background(), server.URL)
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestImportProfile_EmptyExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(profilePage()))
	}))
	defer server.Close()

	svc := NewService(&fakeClient{response: `{"full_name": "", "experiences": []}`}, "", false)

	_, err := svc.ImportProfile(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty profile")
}

func TestExtractProfileText_RemovesChrome(t *testing.T) {
	text, err := ExtractProfileText(`<html><body>
		<nav>Navigation</nav>
		<main><h1>Jane Doe</h1><p>Engineer</p></main>
		<footer>Footer</footer>
	</body></html>`)
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("nearly empty"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("content ", 100)))
}
