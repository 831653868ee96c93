// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeData", "JobDescription")
	Description string        // System prompt describing the extraction task
	Fields      []SchemaField // Expected output fields
	Rules       []string      // Extra instructions appended after the schema
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the user prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

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

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent facts.\n")
	sb.WriteString("- Use null for missing single values and [] for missing lists.\n")
	for _, rule := range schema.Rules {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// BuildExtractionMessages returns the chat form of an extraction request:
// the schema description as system message and the prompt as user message.
func BuildExtractionMessages(schema ExtractionSchema, inputText string) []Message {
	return []Message{
		SystemMessage(schema.Description),
		UserMessage(BuildExtractionPrompt(schema, inputText)),
	}
}

// --- Predefined Schemas ---

// ResumeSchema returns the extraction schema for résumé text.
func ResumeSchema(description string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "ResumeData",
		Description: description,
		Fields: []SchemaField{
			{
				Name:        "personal_info",
				Type:        `{"name": string|null, "email": string|null, "phone": string|null, "location": string|null, "linkedin": string|null}`,
				Description: "Contact details from the header",
				Required:    true,
			},
			{
				Name:        "summary",
				Type:        "string|null",
				Description: "Professional summary or objective, verbatim",
			},
			{
				Name:        "experience",
				Type:        `[{"company": string, "title": string, "location": string|null, "start_date": string|null, "end_date": string|null, "bullets": [string]}]`,
				Description: "Every position, most recent first, bullets copied verbatim",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        `[{"institution": string, "degree": string, "field": string|null, "location": string|null, "graduation_date": string|null}]`,
				Description: "Degrees and programs",
				Required:    true,
			},
			{
				Name:        "skills",
				Type:        "[string]",
				Description: "Individual skills and technologies, one per entry; certifications belong here too",
				Required:    true,
			},
		},
		Rules: []string{
			"Do not merge separate bullets into one entry.",
			"Keep dates as written in the résumé.",
		},
	}
}

// JobDescriptionSchema returns the extraction schema for job postings.
func JobDescriptionSchema(description string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "JobDescription",
		Description: description,
		Fields: []SchemaField{
			{Name: "role_title", Type: "string", Description: "Exact job title", Required: true},
			{Name: "role_summary", Type: "string|null", Description: "One or two sentence summary of the role"},
			{Name: "company", Type: "string|null", Description: "Hiring company"},
			{Name: "location", Type: "string|null", Description: "Location and work arrangement"},
			{Name: "experience_level", Type: "string|null", Description: "Seniority, e.g. Senior, Mid-level"},
			{Name: "team_scope", Type: "string|null", Description: "Team or organization the role sits in"},
			{Name: "industry_domain", Type: "string|null", Description: "Industry or business domain"},
			{Name: "must_have_requirements", Type: "[string]", Description: "Required qualifications, verbatim", Required: true},
			{Name: "nice_to_have_requirements", Type: "[string]", Description: "Preferred qualifications, verbatim", Required: true},
			{Name: "technical_skills", Type: "[string]", Description: "Technologies, tools, languages", Required: true},
			{Name: "soft_skills", Type: "[string]", Description: "Interpersonal and leadership skills", Required: true},
			{Name: "keywords_to_include", Type: "[string]", Description: "Terms an ATS would search for", Required: true},
			{Name: "responsibilities", Type: "[string]", Description: "Duties of the role, verbatim", Required: true},
		},
	}
}
