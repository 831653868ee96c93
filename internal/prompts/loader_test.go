package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		key      string
		contains string
		wantErr  string
	}{
		{name: "job description system", file: "parsing.json", key: "extract-job-description-system", contains: "Extract structured information"},
		{name: "suggestion template kept raw", file: "suggestions.json", key: "generate-user", contains: "{{.ResumeView}}"},
		{name: "unknown file", file: "nonexistent.json", key: "some-key", wantErr: "failed to read prompt file"},
		{name: "unknown key", file: "parsing.json", key: "nonexistent-key", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := Get(tt.file, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render("suggestions.json", "generate-feedback", map[string]string{"Feedback": "keep it short"})
	require.NoError(t, err)
	assert.Contains(t, out, "keep it short")
	assert.NotContains(t, out, "{{")
}

func TestRender_MissingValue(t *testing.T) {
	_, err := Render("suggestions.json", "generate-feedback", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Feedback")
}

func TestRender_AllTemplatesParse(t *testing.T) {
	for _, file := range []string{"parsing.json", "suggestions.json"} {
		keys, err := Keys(file)
		require.NoError(t, err)
		require.NotEmpty(t, keys)
		for _, key := range keys {
			_, err := compiled(file, key)
			assert.NoError(t, err, "%s/%s", file, key)
		}
	}
}

func TestKeys(t *testing.T) {
	keys, err := Keys("parsing.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"extract-job-description-system", "extract-resume-system", "job-description-rules"}, keys)
}
