package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched posting is reused
const DefaultCacheTTL = 15 * time.Minute

// PageSource retrieves job postings
type PageSource interface {
	JobPosting(ctx context.Context, url string) (*Page, error)
}

type cacheEntry struct {
	page    *Page
	expires time.Time
}

// CachedFetcher wraps a PageSource with an in-memory TTL cache keyed by URL.
// Only successful fetches are cached.
type CachedFetcher struct {
	source PageSource
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedFetcher creates a cache in front of source.
func NewCachedFetcher(source PageSource, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// JobPosting returns a cached page when one is fresh, otherwise fetches it.
func (c *CachedFetcher) JobPosting(ctx context.Context, url string) (*Page, error) {
	c.mu.Lock()
	entry, ok := c.entries[url]
	c.mu.Unlock()
	if ok && c.now().Before(entry.expires) {
		return entry.page, nil
	}

	page, err := c.source.JobPosting(ctx, url)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[url] = cacheEntry{page: page, expires: c.now().Add(c.ttl)}
	c.evictExpiredLocked()
	c.mu.Unlock()
	return page, nil
}

// Invalidate drops a URL from the cache, forcing a re-fetch on next request.
func (c *CachedFetcher) Invalidate(url string) {
	c.mu.Lock()
	delete(c.entries, url)
	c.mu.Unlock()
}

func (c *CachedFetcher) evictExpiredLocked() {
	now := c.now()
	for url, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, url)
		}
	}
}
