package scrape

import (
	"errors"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/scrape/fetch"
	"jobscout-engine/internal/scrape/wellfound"
)

// Stable error codes shared by the HTTP API, watch-mode events and the CLIs.
const (
	CodeUnknownTitle    = "unknown_title"
	CodeUnknownLocation = "unknown_location"
	CodeLayoutChanged   = "layout_changed"
	CodeFetchFailed     = "fetch_failed"
	CodeBrowserFailed   = "browser_failed"
	CodeInternal        = "internal_error"
)

// ErrorCode names the kind of a search error. A fetch that failed inside the
// browser session is still a fetch failure.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, catalog.ErrUnknownTitle):
		return CodeUnknownTitle
	case errors.Is(err, catalog.ErrUnknownLocation):
		return CodeUnknownLocation
	case errors.Is(err, wellfound.ErrLayoutChanged):
		return CodeLayoutChanged
	case errors.Is(err, fetch.ErrFetch):
		return CodeFetchFailed
	case errors.Is(err, browser.ErrSession):
		return CodeBrowserFailed
	default:
		return CodeInternal
	}
}
