package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

type stubSource struct {
	page *fetch.Page
	err  error
}

func (s stubSource) JobPosting(context.Context, string) (*fetch.Page, error) {
	return s.page, s.err
}

const sampleHTML = `<!DOCTYPE html>
<html>
<body>
<nav>Navigation</nav>
<div class="job-description">
<h1>Senior Software Engineer</h1>
<h2>About the Role</h2>
<ul><li>Go</li><li>Kubernetes</li></ul>
<h2>Requirements</h2>
</div>
<form>Apply now</form>
<footer>Footer</footer>
</body>
</html>`

func TestFromText(t *testing.T) {
	p, err := FromText("Senior   Engineer\r\n\r\n\r\nGo required")
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer\n\nGo required", p.Text)
	assert.Len(t, p.Meta.Hash, 64)
	assert.Empty(t, p.Meta.URL)

	_, err = FromText(" \n\t ")
	assert.ErrorIs(t, err, ErrEmptyPosting)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("# Job Title\n\nDescription here"), 0o644))
	htmlPath := filepath.Join(dir, "job.html")
	require.NoError(t, os.WriteFile(htmlPath, []byte(sampleHTML), 0o644))
	sniffPath := filepath.Join(dir, "saved_page")
	require.NoError(t, os.WriteFile(sniffPath, []byte(sampleHTML), 0o644))

	t.Run("text", func(t *testing.T) {
		p, err := FromFile(textPath)
		require.NoError(t, err)
		assert.Equal(t, "# Job Title\n\nDescription here", p.Text)
	})

	for _, path := range []string{htmlPath, sniffPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			p, err := FromFile(path)
			require.NoError(t, err)
			for _, want := range []string{"Senior Software Engineer", "About the Role", "Kubernetes", "Requirements"} {
				assert.Contains(t, p.Text, want)
			}
			for _, unwanted := range []string{"Navigation", "Footer", "Apply now"} {
				assert.NotContains(t, p.Text, unwanted)
			}
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := FromFile(filepath.Join(dir, "missing.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file not found")
	})

	t.Run("hash differs by content", func(t *testing.T) {
		a, err := FromFile(textPath)
		require.NoError(t, err)
		b, err := FromFile(htmlPath)
		require.NoError(t, err)
		assert.NotEqual(t, a.Meta.Hash, b.Meta.Hash)
	})
}

func TestFromURL(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid url", func(t *testing.T) {
		for _, u := range []string{"", "not-a-url", "example.com", "http://"} {
			_, err := FromURL(ctx, stubSource{}, u)
			assert.ErrorIs(t, err, ErrInvalidURL, u)
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		_, err := FromURL(ctx, stubSource{err: errors.New("connection refused")}, "https://example.com/job")
		assert.ErrorIs(t, err, ErrHTTPRequestFailed)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("empty page", func(t *testing.T) {
		_, err := FromURL(ctx, stubSource{page: &fetch.Page{Text: "  "}}, "https://example.com/job")
		assert.ErrorIs(t, err, ErrEmptyPosting)
	})

	t.Run("success", func(t *testing.T) {
		src := stubSource{page: &fetch.Page{
			Platform: fetch.PlatformLever,
			Title:    "Backend Engineer",
			Text:     "Backend   Engineer\nGo required",
			Rendered: true,
		}}
		p, err := FromURL(ctx, src, "https://jobs.lever.co/acme/1")
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer\nGo required", p.Text)
		assert.Equal(t, "https://jobs.lever.co/acme/1", p.Meta.URL)
		assert.Equal(t, "lever", p.Meta.Platform)
		assert.Equal(t, "Backend Engineer", p.Meta.Title)
		assert.True(t, p.Meta.Rendered)
	})
}
