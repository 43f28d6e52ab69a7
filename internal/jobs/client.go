// Package jobs provides a thin client for the Adzuna job search API.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the Adzuna search endpoint for the US market.
const DefaultBaseURL = "https://api.adzuna.com/v1/api/jobs/us/search"

const resultsPerPage = 20

// Error represents a failure talking to the job search API.
type Error struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job search failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job search failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Listing is one job search result.
type Listing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Created     string  `json:"created"`
	SalaryMin   float64 `json:"salaryMin,omitempty"`
	SalaryMax   float64 `json:"salaryMax,omitempty"`
}

// SearchResult is a page of listings.
type SearchResult struct {
	Count    int       `json:"count"`
	Listings []Listing `json:"listings"`
}

// Client queries the job search API.
type Client struct {
	baseURL    string
	appID      string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a job search client. baseURL empty uses the default
// endpoint.
func NewClient(baseURL, appID, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// adzunaResponse mirrors the provider's wire format.
type adzunaResponse struct {
	Count   int `json:"count"`
	Results []struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		Description string  `json:"description"`
		RedirectURL string  `json:"redirect_url"`
		Created     string  `json:"created"`
		SalaryMin   float64 `json:"salary_min"`
		SalaryMax   float64 `json:"salary_max"`
	} `json:"results"`
}

// Search queries listings matching the query text and optional location.
// Pages start at 1.
func (c *Client) Search(ctx context.Context, query, location string, pageNum int) (*SearchResult, error) {
	if pageNum < 1 {
		pageNum = 1
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.apiKey)
	params.Set("results_per_page", strconv.Itoa(resultsPerPage))
	params.Set("content-type", "application/json")
	if query != "" {
		params.Set("what", query)
	}
	if location != "" {
		params.Set("where", location)
	}

	endpoint := fmt.Sprintf("%s/%d?%s", c.baseURL, pageNum, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, &Error{Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var decoded adzunaResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{Message: "failed to parse response", Cause: err}
	}

	result := &SearchResult{
		Count:    decoded.Count,
		Listings: make([]Listing, 0, len(decoded.Results)),
	}
	for _, r := range decoded.Results {
		result.Listings = append(result.Listings, Listing{
			ID:          r.ID,
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: r.Description,
			URL:         r.RedirectURL,
			Created:     r.Created,
			SalaryMin:   r.SalaryMin,
			SalaryMax:   r.SalaryMax,
		})
	}
	return result, nil
}
