package browser

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/scrape/fetch"
)

// PageFetcher loads search pages through the browser session instead of a
// plain HTTP client. Failures surface as *fetch.FetchError.
type PageFetcher struct {
	S *Session
}

func (f PageFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.S.mu.Lock()
	defer f.S.mu.Unlock()

	doc, err := f.S.render(ctx, url)
	if err != nil {
		return nil, &fetch.FetchError{URL: url, Err: err}
	}
	return doc, nil
}
