package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// ParseError represents a failure turning extracted page text into a profile.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Service imports public profiles into editable resumes.
type Service struct {
	client     llm.Client
	chromePath string
	useBrowser bool
}

// NewService creates an importer. chromePath optionally points at a browser
// binary for the SPA fallback; useBrowser false disables the fallback
// entirely.
func NewService(client llm.Client, chromePath string, useBrowser bool) *Service {
	return &Service{client: client, chromePath: chromePath, useBrowser: useBrowser}
}

// ImportProfile fetches a profile URL and extracts its structured content.
func (s *Service) ImportProfile(ctx context.Context, profileURL string) (*types.ImportedProfile, error) {
	result, err := fetchURL(ctx, profileURL)
	if err != nil {
		return nil, err
	}

	text, err := ExtractProfileText(result.HTML)
	if err != nil {
		return nil, &ParseError{Message: "failed to extract page text", Cause: err}
	}

	// JS-rendered pages come back nearly empty over plain HTTP
	if ShouldUseBrowser(text) && s.useBrowser {
		html, err := fetchWithBrowser(ctx, profileURL, s.chromePath, 60*time.Second)
		if err != nil {
			return nil, &FetchError{URL: profileURL, Message: "browser fallback failed", Cause: err}
		}
		if text, err = ExtractProfileText(html); err != nil {
			return nil, &ParseError{Message: "failed to extract rendered page text", Cause: err}
		}
	}

	if text == "" {
		return nil, &ParseError{Message: "page contained no readable text"}
	}

	return s.extractProfile(ctx, text)
}

// ImportResume imports a profile and converts it into an editable resume.
func (s *Service) ImportResume(ctx context.Context, profileURL string) (*types.ResumeData, error) {
	profile, err := s.ImportProfile(ctx, profileURL)
	if err != nil {
		return nil, err
	}
	return profile.ToResumeData(), nil
}

// extractProfile runs LLM extraction over cleaned page text.
func (s *Service) extractProfile(ctx context.Context, text string) (*types.ImportedProfile, error) {
	prompt := llm.BuildExtractionPrompt(llm.LinkedInProfileSchema(), text)

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &ParseError{Message: "LLM extraction failed", Cause: err}
	}

	var profile types.ImportedProfile
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &profile); err != nil {
		return nil, &ParseError{Message: "failed to parse extraction JSON", Cause: err}
	}

	if profile.FullName == "" && len(profile.Experiences) == 0 {
		return nil, &ParseError{Message: "extraction produced an empty profile"}
	}

	return &profile, nil
}
