package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/jonathan/resume-matcher/internal/types"
)

// ErrNoJSON is returned by DecodeLenient when the reply holds no JSON object
var ErrNoJSON = errors.New("no JSON object in model reply")

// DecodeLenient decodes a model reply into out, which must be a pointer to a
// struct with json tags. Fields whose values have the wrong type are left at
// their zero value and reported as issues instead of failing the decode.
// An error is returned only when no JSON object can be found at all.
func DecodeLenient(reply string, out any) (types.Issues, error) {
	raw := ExtractJSON(reply)
	if raw == "" {
		return nil, ErrNoJSON
	}

	var generic map[string]any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: scalarToSliceHook,
		MatchName:  strings.EqualFold,
	})
	if err != nil {
		return nil, err
	}

	var issues types.Issues
	if err := decoder.Decode(generic); err != nil {
		var msErr *mapstructure.Error
		if !errors.As(err, &msErr) {
			return nil, err
		}
		for _, e := range msErr.Errors {
			issues = append(issues, types.ExtractionIssue{Field: fieldFromError(e), Message: e})
		}
	}
	return issues, nil
}

// scalarToSliceHook accepts a lone string where a list of strings is expected
func scalarToSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Slice && to.Elem().Kind() == reflect.String {
		s := strings.TrimSpace(data.(string))
		if s == "" {
			return []string{}, nil
		}
		return []string{s}, nil
	}
	return data, nil
}

// fieldFromError pulls the quoted field name out of a mapstructure error message
func fieldFromError(msg string) string {
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
