// Package drafting talks to the LLM provider on behalf of the editing
// session: structured resume generation and analysis, plus free-text
// composition, enhancement, and refinement.
package drafting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/prompts"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// Action names used for error reporting and request sequencing.
const (
	ActionGenerate = "generate"
	ActionAnalyze  = "analyze"
	ActionCompose  = "compose"
	ActionEnhance  = "enhance"
	ActionRefine   = "refine"
)

const noJobDescription = "No job description provided. Analyze for general best practices."

// Service drafts resume content through an LLM client. The zero value is
// not usable; construct with NewService.
type Service struct {
	client llm.Client
}

// NewService returns a Service backed by the given client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// NewFromAPIKey constructs a Service with a default Gemini client.
func NewFromAPIKey(ctx context.Context, apiKey string) (*Service, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, &ServiceError{Action: "init", Message: "failed to create LLM client", Cause: err}
	}
	return NewService(client), nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}

// Generate produces a complete structured resume tailored to a job
// description, seeded with the user's existing resume. The response is
// schema-checked in a single parse attempt; on any shape failure the
// caller's model is left untouched and a *MalformedResponseError carries
// the raw payload.
func (s *Service) Generate(ctx context.Context, jobDescription string, existing *types.ResumeData) (*types.ResumeData, error) {
	existingJSON, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return nil, &ServiceError{Action: ActionGenerate, Message: "failed to encode existing resume", Cause: err}
	}

	template := prompts.MustGet("drafting.json", "generate-resume")
	prompt := prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"ExistingResume": string(existingJSON),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &ServiceError{Action: ActionGenerate, Message: "LLM request failed", Cause: err}
	}

	if err := schemas.ValidateResume(raw); err != nil {
		return nil, &MalformedResponseError{
			Action:  ActionGenerate,
			Message: "response does not match resume schema",
			Raw:     raw,
			Cause:   err,
		}
	}

	var resume types.ResumeData
	if err := json.Unmarshal([]byte(raw), &resume); err != nil {
		return nil, &MalformedResponseError{
			Action:  ActionGenerate,
			Message: "failed to parse resume JSON",
			Raw:     raw,
			Cause:   err,
		}
	}

	resume.Normalize()
	return &resume, nil
}

// Analyze scores a resume against a job description and returns the
// reviewer report. A blank job description requests a general review.
func (s *Service) Analyze(ctx context.Context, resume *types.ResumeData, jobDescription string) (*types.AnalysisReport, error) {
	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return nil, &ServiceError{Action: ActionAnalyze, Message: "failed to encode resume", Cause: err}
	}

	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = noJobDescription
	}

	template := prompts.MustGet("drafting.json", "analyze-resume")
	prompt := prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"Resume":         string(resumeJSON),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &ServiceError{Action: ActionAnalyze, Message: "LLM request failed", Cause: err}
	}

	if err := schemas.ValidateAnalysis(raw); err != nil {
		return nil, &MalformedResponseError{
			Action:  ActionAnalyze,
			Message: "response does not match analysis schema",
			Raw:     raw,
			Cause:   err,
		}
	}

	var report types.AnalysisReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, &MalformedResponseError{
			Action:  ActionAnalyze,
			Message: "failed to parse analysis JSON",
			Raw:     raw,
			Cause:   err,
		}
	}

	return &report, nil
}

// Compose builds a full resume text from a name, an optional LinkedIn URL,
// and a free-form talents description.
func (s *Service) Compose(ctx context.Context, name, linkedin, talents string) (string, error) {
	if strings.TrimSpace(linkedin) == "" {
		linkedin = "Not provided"
	}

	template := prompts.MustGet("drafting.json", "compose-simple")
	prompt := prompts.Format(template, map[string]string{
		"Name":     name,
		"LinkedIn": linkedin,
		"Talents":  talents,
	})

	return s.generateText(ctx, ActionCompose, prompt)
}

// ComposeFromProfile builds a resume text from a scraped profile.
func (s *Service) ComposeFromProfile(ctx context.Context, profile *types.ImportedProfile) (string, error) {
	template := prompts.MustGet("drafting.json", "compose-detailed")
	prompt := prompts.Format(template, map[string]string{
		"Profile": formatProfile(profile),
	})

	return s.generateText(ctx, ActionCompose, prompt)
}

// Enhance rewrites pasted resume text into a more professional version.
func (s *Service) Enhance(ctx context.Context, resumeText string) (string, error) {
	template := prompts.MustGet("drafting.json", "enhance-resume")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})

	return s.generateText(ctx, ActionEnhance, prompt)
}

// Refine renders the structured model into plain text through the refine
// prompt, producing a polished one-page resume.
func (s *Service) Refine(ctx context.Context, resume *types.ResumeData) (string, error) {
	template := prompts.MustGet("drafting.json", "refine-resume")
	prompt := prompts.Format(template, map[string]string{
		"Name":       resume.PersonalInfo.FullName,
		"Contact":    resume.PersonalInfo.ContactLine(),
		"Summary":    resume.Summary,
		"Experience": formatExperiences(resume.Experiences),
		"Education":  formatEducation(resume.Education),
		"Skills":     strings.Join(types.NonBlank(resume.Skills), ", "),
	})

	return s.generateText(ctx, ActionRefine, prompt)
}

func (s *Service) generateText(ctx context.Context, action, prompt string) (string, error) {
	text, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", &ServiceError{Action: action, Message: "LLM request failed", Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &MalformedResponseError{Action: action, Message: "empty response"}
	}
	return text, nil
}

func formatExperiences(experiences []types.Experience) string {
	var sb strings.Builder
	for _, exp := range experiences {
		if exp.IsEmpty() {
			continue
		}
		fmt.Fprintf(&sb, "- Position: %s\n", exp.Position)
		fmt.Fprintf(&sb, "  Company: %s\n", exp.Company)
		fmt.Fprintf(&sb, "  Duration: %s\n", exp.DateRange())
		sb.WriteString("  Key Responsibilities & Achievements:\n")
		for _, line := range types.NonBlank(exp.Responsibilities) {
			fmt.Fprintf(&sb, "    - %s\n", line)
		}
	}
	return sb.String()
}

func formatEducation(education []types.Education) string {
	var sb strings.Builder
	for _, edu := range education {
		if edu.IsEmpty() {
			continue
		}
		fmt.Fprintf(&sb, "- Degree: %s\n", edu.Degree)
		fmt.Fprintf(&sb, "  Institution: %s\n", edu.InstitutionLine())
		fmt.Fprintf(&sb, "  Years: %s - %s\n", edu.StartYear, edu.EndYear)
	}
	return sb.String()
}

func formatProfile(p *types.ImportedProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- Full Name: %s\n", p.FullName)
	fmt.Fprintf(&sb, "- Headline: %s\n", p.Headline)
	fmt.Fprintf(&sb, "- Summary: %s\n", p.About)
	sb.WriteString("- Work Experience:\n")
	for _, exp := range p.Experiences {
		fmt.Fprintf(&sb, "  - Title: %s\n", exp.Position)
		fmt.Fprintf(&sb, "    Company: %s\n", exp.Company)
		fmt.Fprintf(&sb, "    Duration: %s - %s\n", exp.StartDate, orPresent(exp.EndDate))
		for _, bullet := range exp.Bullets {
			fmt.Fprintf(&sb, "    Description: %s\n", bullet)
		}
	}
	sb.WriteString("- Education:\n")
	for _, edu := range p.Education {
		fmt.Fprintf(&sb, "  - School: %s\n", edu.Institution)
		fmt.Fprintf(&sb, "    Degree: %s\n", edu.Degree)
		fmt.Fprintf(&sb, "    Duration: %s - %s\n", edu.StartYear, edu.EndYear)
	}
	fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(p.Skills, ", "))
	return sb.String()
}

func orPresent(endDate string) string {
	if strings.TrimSpace(endDate) == "" {
		return "Present"
	}
	return endDate
}
