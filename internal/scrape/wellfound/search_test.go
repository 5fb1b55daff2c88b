package wellfound

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobscout-engine/internal/catalog"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	html string
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.html))
}

func TestSearcher_Search(t *testing.T) {
	f := &stubFetcher{html: page(card(defaultCard("One")), card(defaultCard("Two")))}
	s := &Searcher{BaseURL: catalog.DefaultBaseURL, Fetcher: f, Extractor: newTestExtractor(t)}

	got, err := s.Search(context.Background(), catalog.Query{Title: "Software Engineer", Location: "Austin"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, []string{"https://wellfound.com/role/l/software-engineer/austin"}, f.urls)
}

func TestSearcher_UnknownTitleSkipsFetch(t *testing.T) {
	f := &stubFetcher{}
	s := &Searcher{BaseURL: catalog.DefaultBaseURL, Fetcher: f, Extractor: newTestExtractor(t)}

	_, err := s.Search(context.Background(), catalog.Query{Title: "Astronaut"})
	require.ErrorIs(t, err, catalog.ErrUnknownTitle)
	require.Empty(t, f.urls)
}

func TestSearcher_PropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	s := &Searcher{BaseURL: catalog.DefaultBaseURL, Fetcher: &stubFetcher{err: boom}, Extractor: newTestExtractor(t)}

	_, err := s.Search(context.Background(), catalog.Query{Title: "Designer"})
	require.ErrorIs(t, err, boom)

	bad := defaultCard("x")
	bad.noTitle = true
	s.Fetcher = &stubFetcher{html: page(card(bad))}
	_, err = s.Search(context.Background(), catalog.Query{Title: "Designer"})
	require.ErrorIs(t, err, ErrLayoutChanged)
}
