package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// maxJSONBody bounds JSON request bodies
const maxJSONBody = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// JobDescriptionRequest carries a posting as pasted text or a URL
type JobDescriptionRequest struct {
	Text string `json:"text" validate:"required_without=URL,excluded_with=URL,max=100000"`
	URL  string `json:"url" validate:"omitempty,http_url"`
}

// PairRequest names a résumé and a job description; resume_id 0 means the default résumé
type PairRequest struct {
	ResumeID         int64 `json:"resume_id" validate:"gte=0"`
	JobDescriptionID int64 `json:"job_description_id" validate:"required,gt=0"`
}

// SuggestRequest asks for a new batch of suggestions
type SuggestRequest struct {
	PairRequest
	MaxCount int    `json:"max_count" validate:"gte=0,lte=50"`
	Feedback string `json:"feedback" validate:"max=2000"`
}

// EditRequest replaces a suggestion's text before applying it
type EditRequest struct {
	EditedText string `json:"edited_text" validate:"required,max=500"`
}

// RefineRequest carries reviewer feedback for one suggestion
type RefineRequest struct {
	Feedback string `json:"feedback" validate:"required,max=2000"`
}

// MatchRequest runs the whole flow for a new posting
type MatchRequest struct {
	ResumeID       int64                 `json:"resume_id" validate:"gte=0"`
	JobDescription JobDescriptionRequest `json:"job_description"`
	MaxCount       int                   `json:"max_count" validate:"gte=0,lte=50"`
}

// decodeRequest reads a JSON body into dst and validates it
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is required"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return validateRequest(dst)
}

// validateRequest converts validator failures into an ErrValidation naming the first bad field
func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &ErrValidation{Field: fieldPath(fe.Namespace()), Message: describeTag(fe)}
}

// fieldPath keeps the JSON names of a validator namespace:
// "SuggestRequest.PairRequest.job_description_id" -> "job_description_id"
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := parts[:0]
	for _, p := range parts[1:] {
		if p != "" && !unicode.IsUpper(rune(p[0])) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return namespace
	}
	return strings.Join(kept, ".")
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return "is required when url is not given"
	case "excluded_with":
		return "cannot be combined with url"
	case "http_url":
		return "must be an http(s) URL"
	case "gt", "gte":
		return "must be at least " + minValue(fe)
	case "lte", "max":
		return "must be at most " + fe.Param()
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

func minValue(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		n, err := strconv.Atoi(fe.Param())
		if err == nil {
			return strconv.Itoa(n + 1)
		}
	}
	return fe.Param()
}

// pathID parses an integer path value
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &ErrValidation{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}
