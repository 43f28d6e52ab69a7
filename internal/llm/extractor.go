package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "LinkedInProfile")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// LinkedInProfileSchema returns the extraction schema for scraped LinkedIn
// profile pages. The profile text is messy rendered HTML text, so the fields
// describe where each value typically appears on the page.
func LinkedInProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "LinkedInProfile",
		Description: `You are an expert profile parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Your task is to extract structured career information from the text of a public LinkedIn profile page.
IMPORTANT: Preserve the exact wording from the original text.
EXCLUDE: Navigation labels, "People also viewed" sections, ads, cookie banners, and any other page chrome.`,
		Fields: []SchemaField{
			{
				Name:        "full_name",
				Type:        "\"string\"",
				Description: "The person's full name as shown at the top of the profile",
				Required:    true,
			},
			{
				Name:        "headline",
				Type:        "\"string\"",
				Description: "The headline shown under the name (e.g., 'Senior Engineer at Acme')",
				Required:    false,
			},
			{
				Name:        "location",
				Type:        "\"string\"",
				Description: "City/region line from the profile header",
				Required:    false,
			},
			{
				Name:        "about",
				Type:        "\"string\"",
				Description: "Full text of the About section, verbatim",
				Required:    false,
			},
			{
				Name:        "experiences",
				Type:        "[{\"company\": \"string\", \"position\": \"string\", \"start_date\": \"YYYY-MM\", \"end_date\": \"YYYY-MM or empty if current\", \"bullets\": [\"string\"]}]",
				Description: "Every entry from the Experience section, most recent first, dates normalized to YYYY-MM",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        "[{\"institution\": \"string\", \"degree\": \"string\", \"field_of_study\": \"string\", \"start_year\": \"YYYY\", \"end_year\": \"YYYY\"}]",
				Description: "Every entry from the Education section",
				Required:    false,
			},
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: "Skills listed on the profile, one item per skill",
				Required:    false,
			},
			{
				Name:        "certifications",
				Type:        "[\"string\"]",
				Description: "Licenses and certifications, name and issuer joined in one string",
				Required:    false,
			},
		},
	}
}
