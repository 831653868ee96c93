package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) JobPosting(_ context.Context, url string) (*Page, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &Page{URL: url, Text: "posting"}, nil
}

func TestCachedFetcher(t *testing.T) {
	src := &countingSource{}
	cache := NewCachedFetcher(src, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := cache.JobPosting(ctx, "https://example.com/a")
	require.NoError(t, err)
	_, err = cache.JobPosting(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "second call should be served from cache")

	now = now.Add(2 * time.Minute)
	_, err = cache.JobPosting(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "expired entry should be refetched")

	cache.Invalidate("https://example.com/a")
	_, err = cache.JobPosting(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	cache := NewCachedFetcher(src, 0)
	ctx := context.Background()

	_, err := cache.JobPosting(ctx, "https://example.com/a")
	require.Error(t, err)
	_, err = cache.JobPosting(ctx, "https://example.com/a")
	require.Error(t, err)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)
}
