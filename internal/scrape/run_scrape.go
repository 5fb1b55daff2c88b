package scrape

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/domain"
)

// SearchFunc runs one catalog query.
type SearchFunc func(ctx context.Context, q catalog.Query) ([]domain.Listing, error)

type Result struct {
	Query    catalog.Query
	Listings []domain.Listing
	Err      error
	Took     time.Duration
}

// RunBatch runs every query with at most parallel searches in flight.
// A failed query does not cancel its siblings; results come back in query
// order.
func RunBatch(ctx context.Context, search SearchFunc, queries []catalog.Query, parallel int, perQuery time.Duration) []Result {
	if parallel <= 0 {
		parallel = 1
	}
	if perQuery <= 0 {
		perQuery = 2 * time.Minute
	}

	results := make([]Result, len(queries))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(parallel)

	for i, q := range queries {
		i, q := i, q

		g.Go(func() error {
			qctx, cancel := context.WithTimeout(ctx, perQuery)
			defer cancel()

			start := time.Now()
			listings, err := search(qctx, q)
			res := Result{Query: q, Listings: listings, Err: err, Took: time.Since(start)}
			if err != nil {
				log.Printf("[scrape] title=%q location=%q error: %v", q.Title, q.Location, err)
			} else {
				log.Printf("[scrape] title=%q location=%q found=%d took=%s", q.Title, q.Location, len(listings), res.Took.Round(time.Millisecond))
			}

			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil // best-effort: don't cancel siblings
		})
	}

	_ = g.Wait()
	return results
}

// AllLocations expands title into one query per catalog location.
func AllLocations(title string) []catalog.Query {
	locs := catalog.Locations()
	out := make([]catalog.Query, 0, len(locs))
	for _, l := range locs {
		out = append(out, catalog.Query{Title: title, Location: l})
	}
	return out
}

// Merge concatenates the listings of every successful result, dropping
// postings already seen under another location.
func Merge(results []Result) []domain.Listing {
	out := []domain.Listing{}
	seen := map[string]bool{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for _, l := range r.Listings {
			key := listingKey(l)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, l)
		}
	}
	return out
}
