package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adzunaFixture = `{
	"count": 2,
	"results": [
		{
			"id": "123",
			"title": "Go Developer",
			"company": {"display_name": "Acme Corp"},
			"location": {"display_name": "Austin, TX"},
			"description": "Build backend services",
			"redirect_url": "https://example.com/job/123",
			"created": "2026-08-01T00:00:00Z",
			"salary_min": 120000,
			"salary_max": 150000
		},
		{
			"id": "456",
			"title": "Platform Engineer",
			"company": {"display_name": "Globex"},
			"location": {"display_name": "Remote"},
			"description": "Run the platform",
			"redirect_url": "https://example.com/job/456",
			"created": "2026-08-02T00:00:00Z"
		}
	]
}`

func TestSearch(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(adzunaFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, "app-id", "app-key")

	result, err := client.Search(context.Background(), "go developer", "Austin", 1)
	require.NoError(t, err)

	assert.Equal(t, "/1", gotPath)
	assert.Equal(t, []string{"app-id"}, gotQuery["app_id"])
	assert.Equal(t, []string{"go developer"}, gotQuery["what"])
	assert.Equal(t, []string{"Austin"}, gotQuery["where"])

	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Listings, 2)
	assert.Equal(t, "Go Developer", result.Listings[0].Title)
	assert.Equal(t, "Acme Corp", result.Listings[0].Company)
	assert.Equal(t, "https://example.com/job/123", result.Listings[0].URL)
	assert.Equal(t, 120000.0, result.Listings[0].SalaryMin)
}

func TestSearch_OmitsEmptyFilters(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "app-id", "app-key")

	result, err := client.Search(context.Background(), "", "", 0)
	require.NoError(t, err)

	assert.Empty(t, result.Listings)
	assert.NotContains(t, gotQuery, "what")
	assert.NotContains(t, gotQuery, "where")
}

func TestSearch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", "creds")

	_, err := client.Search(context.Background(), "go", "", 1)
	require.Error(t, err)

	var jobsErr *Error
	require.ErrorAs(t, err, &jobsErr)
	assert.Equal(t, http.StatusUnauthorized, jobsErr.StatusCode)
}

func TestSearch_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "app-id", "app-key")

	_, err := client.Search(context.Background(), "go", "", 1)
	require.Error(t, err)

	var jobsErr *Error
	assert.ErrorAs(t, err, &jobsErr)
}
