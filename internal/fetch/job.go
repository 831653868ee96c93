package fetch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Page is a fetched job posting reduced to text.
type Page struct {
	URL       string
	Platform  Platform
	Title     string
	Text      string
	Rendered  bool // true when the text came from the headless browser
	FetchedAt time.Time
}

// JobPosting fetches a posting and extracts its main text using the
// platform's selectors. When browser fallback is enabled and the plain fetch
// yields too little text, the page is rendered in a headless browser. A
// failed render keeps the plain result.
func (f *Fetcher) JobPosting(ctx context.Context, urlStr string) (*Page, error) {
	platform := DetectPlatform(urlStr)
	log := f.opts.Logger.With(zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := f.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)
	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	page := &Page{
		URL:       urlStr,
		Platform:  platform,
		Title:     ExtractTitle(result.HTML),
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}
	log.Debug("fetched job posting", zap.Int("html_bytes", len(result.HTML)), zap.Int("text_chars", len(text)))

	if !f.opts.UseBrowser || !ShouldUseBrowser(text) {
		return page, nil
	}

	log.Info("content too short, falling back to browser rendering", zap.Int("chars", len(text)))
	html, err := f.render(ctx, urlStr)
	if err != nil {
		log.Warn("browser rendering failed, keeping HTTP content", zap.Error(err))
		return page, nil
	}
	rendered, err := ExtractMainText(html, content, noise...)
	if err != nil {
		log.Warn("browser content extraction failed", zap.Error(err))
		return page, nil
	}
	if len(rendered) > len(page.Text) {
		page.Text = rendered
		page.Rendered = true
		if title := ExtractTitle(html); title != "" {
			page.Title = title
		}
	}
	return page, nil
}

// String summarizes the page for logs
func (p *Page) String() string {
	return fmt.Sprintf("%s (%s, %d chars)", p.URL, p.Platform, len(p.Text))
}
