package types

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a page and returns it parsed. Implementations own
// timeouts and cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// RunStatus describes the most recent search the engine ran.
type RunStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastQuery string `json:"last_query"`
	LastFound int    `json:"last_found"`
	Running   bool   `json:"running"`
}
