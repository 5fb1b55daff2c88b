// Package fetch loads board pages over plain HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ErrFetch marks every failure to obtain a page, whatever the transport.
var ErrFetch = errors.New("fetch failed")

// FetchError carries either the upstream status (with a body excerpt) or
// the transport error.
type FetchError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: upstream status %d: %s", e.URL, e.Status, e.Body)
}

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

func (e *FetchError) Unwrap() error { return e.Err }

type HTTPFetcher struct {
	hc        *http.Client
	userAgent string
}

// NewHTTPFetcher returns a fetcher with its own client. A zero timeout
// falls back to 20s, an empty userAgent to DefaultUserAgent.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		hc:        &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := f.hc.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		log.Printf("[fetch] non-2xx url=%s status=%s", url, res.Status)
		return nil, &FetchError{URL: url, Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Status: res.StatusCode, Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}
