package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name    string   `json:"name"`
	Skills  []string `json:"skills"`
	Score   float64  `json:"score"`
	Contact struct {
		Email string `json:"email"`
	} `json:"contact"`
}

func TestDecodeLenient_ValidReply(t *testing.T) {
	var out decodeTarget
	issues, err := DecodeLenient("```json\n{\"name\": \"Jane\", \"skills\": [\"Go\"], \"score\": 2.5, \"contact\": {\"email\": \"j@x.io\"}}\n```", &out)

	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, "Jane", out.Name)
	assert.Equal(t, []string{"Go"}, out.Skills)
	assert.InDelta(t, 2.5, out.Score, 0.0001)
	assert.Equal(t, "j@x.io", out.Contact.Email)
}

func TestDecodeLenient_CoercesBadFields(t *testing.T) {
	var out decodeTarget
	issues, err := DecodeLenient(`{"name": 42, "skills": "Go", "score": 1, "contact": null}`, &out)

	require.NoError(t, err)
	assert.Equal(t, "", out.Name)
	assert.Equal(t, []string{"Go"}, out.Skills)
	assert.InDelta(t, 1.0, out.Score, 0.0001)
	require.Len(t, issues, 1)
	assert.Equal(t, "name", issues[0].Field)
}

func TestDecodeLenient_NoJSON(t *testing.T) {
	var out decodeTarget
	_, err := DecodeLenient("I cannot help with that.", &out)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestDecodeLenient_NullsAreZero(t *testing.T) {
	var out decodeTarget
	issues, err := DecodeLenient(`{"name": null, "skills": null}`, &out)

	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Empty(t, out.Name)
	assert.Nil(t, out.Skills)
}
