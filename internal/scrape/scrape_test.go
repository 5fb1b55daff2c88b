package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/fetch"
	"jobscout-engine/internal/scrape/wellfound"
)

func TestRunBatch_BestEffortAndOrdered(t *testing.T) {
	queries := AllLocations("Designer")
	require.Len(t, queries, len(catalog.Locations()))

	var inFlight, peak int32
	search := func(ctx context.Context, q catalog.Query) ([]domain.Listing, error) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if q.Location == "Boston" {
			return nil, errors.New("boom")
		}
		return []domain.Listing{{Title: "Designer", Company: q.Location}}, nil
	}

	results := RunBatch(context.Background(), search, queries, 3, time.Second)
	require.Len(t, results, len(queries))
	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))

	for i, r := range results {
		require.Equal(t, queries[i], r.Query)
		if r.Query.Location == "Boston" {
			require.Error(t, r.Err)
			continue
		}
		require.NoError(t, r.Err)
		require.Equal(t, r.Query.Location, r.Listings[0].Company)
	}
}

func TestRunBatch_PerQueryTimeout(t *testing.T) {
	search := func(ctx context.Context, q catalog.Query) ([]domain.Listing, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	results := RunBatch(context.Background(), search, []catalog.Query{{Title: "Designer"}}, 0, 10*time.Millisecond)
	require.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
}

func TestMerge(t *testing.T) {
	results := []Result{
		{Listings: []domain.Listing{
			{Title: "A", Company: "Acme", PostingURL: "https://wellfound.com/jobs/1?utm_source=x"},
			{Title: "B", Company: "Acme", PostingURL: domain.Placeholder},
		}},
		{Err: errors.New("skipped"), Listings: []domain.Listing{{Title: "Z"}}},
		{Listings: []domain.Listing{
			{Title: "A", Company: "Acme", PostingURL: "https://WELLFOUND.com/jobs/1/"},
			{Title: "b", Company: "ACME", PostingURL: domain.Placeholder},
			{Title: "C", Company: "Initech", PostingURL: "https://wellfound.com/jobs/3"},
		}},
	}
	got := Merge(results)
	require.Len(t, got, 3)
	require.Equal(t, "A", got[0].Title)
	require.Equal(t, "B", got[1].Title)
	require.Equal(t, "C", got[2].Title)

	require.NotNil(t, Merge(nil))
}

func TestCanonicalizeURL(t *testing.T) {
	require.Equal(t, "https://wellfound.com/jobs/1?ref=a", canonicalizeURL("HTTPS://Wellfound.com/jobs/1/?utm_medium=x&ref=a#top"))
	require.Equal(t, "", canonicalizeURL(domain.Placeholder))
	require.Equal(t, "", canonicalizeURL("  "))
}

const boardPage = `<html><body>
<div class="mb-6 w-full rounded border border-gray-400 bg-white">
  <img src="https://photos.wellfound.com/startups/i/1-medium.jpg">
  <h2 class="inline text-md font-semibold">Acme</h2>
  <div>
    <a class="mr-2 text-sm font-semibold text-brand-burgandy hover:underline" href="/jobs/1-backend">Backend Engineer</a>
    <span class="whitespace-nowrap rounded-lg bg-accent-yellow-100 px-2 py-1 text-[10px] font-semibold text-neutral-800">Full-time</span>
    <span class="text-xs lowercase text-dark-a mr-2 hidden flex-wrap content-center md:flex">today</span>
    <div class="flex items-center text-neutral-500"><span class="pl-1 text-xs">$100k</span></div>
  </div>
</div>
</body></html>`

func TestNewSearcher_EndToEnd(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(boardPage))
	}))
	defer srv.Close()

	cfg := config.Defaults()
	cfg.Board.BaseURL = srv.URL
	cfg.Board.TimeoutSeconds = 2

	s, err := NewSearcher(cfg, NewHTTPFetcher(cfg))
	require.NoError(t, err)

	got, err := s.Search(context.Background(), catalog.Query{Title: "Backend Engineer", Location: "Austin"})
	require.NoError(t, err)
	require.Equal(t, "/role/l/backend-engineer/austin", gotPath)
	require.Len(t, got, 1)
	require.Equal(t, "Backend Engineer", got[0].Title)
	require.Equal(t, "Acme", got[0].Company)
	require.Equal(t, srv.URL+"/jobs/1-backend", got[0].PostingURL)
}

func TestNewSearcher_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := config.Defaults()
	cfg.Board.BaseURL = srv.URL
	s, err := NewSearcher(cfg, NewHTTPFetcher(cfg))
	require.NoError(t, err)

	_, err = s.Search(context.Background(), catalog.Query{Title: "Designer"})
	require.ErrorIs(t, err, fetch.ErrFetch)
}

func TestNewSearcher_MarkersFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.Board.MarkersPath = filepath.Join(t.TempDir(), "missing.yml")
	_, err := NewSearcher(cfg, NewHTTPFetcher(cfg))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBrowserOptions(t *testing.T) {
	cfg := config.Defaults()
	o := BrowserOptions(cfg)
	require.Equal(t, 2*time.Second, o.Settle)
	require.Equal(t, 5*time.Second, o.LoginWait)
	require.Equal(t, "/jobs/messages", o.MessagesPath)
	require.True(t, o.Headless)
}

func TestErrorCode(t *testing.T) {
	_, titleErr := catalog.ResolveTitle("Astronaut")
	_, locErr := catalog.ResolveLocation("Atlantis")

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"unknown title", fmt.Errorf("search: %w", titleErr), CodeUnknownTitle},
		{"unknown location", locErr, CodeUnknownLocation},
		{"layout", &wellfound.LayoutError{Field: wellfound.FieldTitle, Reason: "marker not found"}, CodeLayoutChanged},
		{"fetch", &fetch.FetchError{URL: "u", Err: errors.New("eof")}, CodeFetchFailed},
		{"browser fetch", &fetch.FetchError{URL: "u", Err: &browser.SessionError{Step: "navigate", Err: errors.New("x")}}, CodeFetchFailed},
		{"browser", &browser.SessionError{Step: "login", Err: errors.New("x")}, CodeBrowserFailed},
		{"other", errors.New("boom"), CodeInternal},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ErrorCode(tc.err), tc.name)
	}
}
