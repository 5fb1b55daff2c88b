package poll

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/output"
	"jobscout-engine/internal/scrape"
)

// PollOnce runs every watch query, writes each successful result to
// output.dir and publishes one event per query. It fails only when every
// query failed.
func PollOnce(ctx context.Context, cfg config.Config, search scrape.SearchFunc, hub *events.Hub) (found int, err error) {
	queries := make([]catalog.Query, 0, len(cfg.Watch.Queries))
	for _, q := range cfg.Watch.Queries {
		queries = append(queries, catalog.Query{Title: q.Title, Location: q.Location})
	}
	if len(queries) == 0 {
		return 0, nil
	}

	perQuery := time.Duration(cfg.Board.TimeoutSeconds)*time.Second + 30*time.Second
	results := scrape.RunBatch(ctx, search, queries, cfg.Watch.Parallel, perQuery)

	failed := 0
	var lastErr error
	for _, r := range results {
		if r.Err == nil {
			path := filepath.Join(cfg.OutputDir(), output.FileName(r.Query.Title, r.Query.Location))
			r.Err = output.WriteJSON(path, r.Listings)
		}
		if r.Err != nil {
			failed++
			lastErr = r.Err
			hub.Publish(events.MakeEvent("", events.TypeSearchFailed, 1, events.SearchFailed{
				Title: r.Query.Title, Location: r.Query.Location, Code: scrape.ErrorCode(r.Err), Error: r.Err.Error(),
			}))
			continue
		}
		found += len(r.Listings)
		hub.Publish(events.MakeEvent("", events.TypeSearchCompleted, 1, events.SearchCompleted{
			Title: r.Query.Title, Location: r.Query.Location, Found: len(r.Listings),
		}))
	}

	log.Printf("[poll] queries=%d failed=%d found=%d", len(results), failed, found)
	if failed == len(results) {
		return found, fmt.Errorf("all %d watch queries failed, last: %w", failed, lastErr)
	}
	return found, nil
}
