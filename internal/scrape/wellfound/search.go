package wellfound

import (
	"context"
	"fmt"
	"log"

	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/types"
)

// Searcher runs one catalog query end to end: build URL, fetch, extract.
type Searcher struct {
	BaseURL   string
	Fetcher   types.Fetcher
	Extractor *Extractor
}

func (s *Searcher) Search(ctx context.Context, q catalog.Query) ([]domain.Listing, error) {
	u, err := catalog.ResolveAndBuildURL(s.BaseURL, q)
	if err != nil {
		return nil, err
	}

	log.Printf("[search] title=%q location=%q url=%s", q.Title, q.Location, u)

	doc, err := s.Fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}

	listings, err := s.Extractor.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", u, err)
	}

	log.Printf("[search] found=%d url=%s", len(listings), u)
	return listings, nil
}
