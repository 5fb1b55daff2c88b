// Package scrape wires the board searcher from configuration and runs
// batches of searches.
package scrape

import (
	"fmt"
	"time"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/scrape/fetch"
	"jobscout-engine/internal/scrape/types"
	"jobscout-engine/internal/scrape/wellfound"
)

// NewSearcher builds a searcher for cfg. The marker table comes from
// board.markers_path when set.
func NewSearcher(cfg config.Config, f types.Fetcher) (*wellfound.Searcher, error) {
	mf := wellfound.DefaultMappingFile()
	if cfg.Board.MarkersPath != "" {
		loaded, err := wellfound.LoadMappingFile(cfg.Board.MarkersPath)
		if err != nil {
			return nil, fmt.Errorf("markers %s: %w", cfg.Board.MarkersPath, err)
		}
		mf = loaded
	}
	x, err := wellfound.NewExtractor(cfg.Board.BaseURL, mf, nil)
	if err != nil {
		return nil, err
	}
	return &wellfound.Searcher{BaseURL: cfg.Board.BaseURL, Fetcher: f, Extractor: x}, nil
}

func NewHTTPFetcher(cfg config.Config) *fetch.HTTPFetcher {
	return fetch.NewHTTPFetcher(time.Duration(cfg.Board.TimeoutSeconds)*time.Second, cfg.Board.UserAgent)
}

func BrowserOptions(cfg config.Config) browser.Options {
	return browser.Options{
		BaseURL:      cfg.Board.BaseURL,
		LoginPath:    cfg.Browser.LoginPath,
		MessagesPath: cfg.Browser.MessagesPath,
		UserAgent:    cfg.Board.UserAgent,
		Headless:     cfg.Browser.Headless,
		Settle:       time.Duration(cfg.Browser.SettleMS) * time.Millisecond,
		LoginWait:    time.Duration(cfg.Browser.LoginWaitMS) * time.Millisecond,
	}
}
