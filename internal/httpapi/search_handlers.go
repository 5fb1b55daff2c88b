package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/scrape/types"
)

type SearchHandler struct {
	RunStatus *atomic.Value // types.RunStatus
	Hub       *events.Hub
	Run       func(ctx context.Context, q catalog.Query) ([]domain.Listing, error)
}

func (h SearchHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, catalogResponse{Titles: catalog.Titles(), Locations: catalog.Locations()})
}

func (h SearchHandler) Last(w http.ResponseWriter, r *http.Request) {
	st, _ := h.RunStatus.Load().(types.RunStatus)
	writeJSON(w, st)
}

// Search runs the query synchronously and answers with the listings array.
func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var q catalog.Query
	if !decodeBody(w, r, &q) {
		return
	}
	reqID := RequestIDFrom(r.Context())

	// Labels are checked before any status change so a typo never shows up
	// as a failed run.
	if err := q.Validate(); err != nil {
		WriteEngineError(w, r, err)
		return
	}

	prev, _ := h.RunStatus.Load().(types.RunStatus)
	started := time.Now().Format(time.RFC3339)
	h.RunStatus.Store(types.RunStatus{
		LastRunAt: started,
		LastOkAt:  prev.LastOkAt,
		LastQuery: describe(q),
		Running:   true,
	})

	listings, err := h.Run(r.Context(), q)

	next := types.RunStatus{
		LastRunAt: started,
		LastOkAt:  prev.LastOkAt,
		LastQuery: describe(q),
		LastFound: len(listings),
	}
	if err != nil {
		next.LastError = err.Error()
		h.RunStatus.Store(next)

		_, code := Classify(err)
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeSearchFailed, 1, events.SearchFailed{
			Title: q.Title, Location: q.Location, Code: code, Error: err.Error(),
		}))
		WriteEngineError(w, r, err)
		return
	}
	next.LastOkAt = time.Now().Format(time.RFC3339)
	h.RunStatus.Store(next)

	h.Hub.Publish(events.MakeEvent(reqID, events.TypeSearchCompleted, 1, events.SearchCompleted{
		Title: q.Title, Location: q.Location, Found: len(listings),
	}))

	if listings == nil {
		listings = []domain.Listing{}
	}
	WriteJSON(w, http.StatusOK, listings)
}

func describe(q catalog.Query) string {
	if q.Location == "" {
		return q.Title
	}
	return q.Title + " @ " + q.Location
}
