package types

import "fmt"

// ExtractionIssue records something extraction skipped or coerced
type ExtractionIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i ExtractionIssue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Issues is the diagnostics list returned next to an extracted model
type Issues []ExtractionIssue

// Add appends an issue
func (is *Issues) Add(field, format string, args ...any) {
	*is = append(*is, ExtractionIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Strings renders each issue on its own
func (is Issues) Strings() []string {
	out := make([]string, len(is))
	for i, issue := range is {
		out[i] = issue.String()
	}
	return out
}
