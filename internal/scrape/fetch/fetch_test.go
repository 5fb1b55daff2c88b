package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_OK(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><body><h1 class="x">hello</h1></body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second, "jobscout-test/1.0")
	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "hello", doc.Find("h1.x").Text())
	require.Equal(t, "jobscout-test/1.0", gotUA)
}

func TestHTTPFetcher_DefaultUserAgent(t *testing.T) {
	f := NewHTTPFetcher(0, "")
	require.Equal(t, DefaultUserAgent, f.userAgent)
	require.Equal(t, 20*time.Second, f.hc.Timeout)
}

func TestHTTPFetcher_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(time.Second, "").Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFetch))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, http.StatusForbidden, fe.Status)
	require.Equal(t, "blocked", fe.Body)
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(time.Second, "").Fetch(context.Background(), url)
	require.ErrorIs(t, err, ErrFetch)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.NotNil(t, fe.Err)
}

func TestHTTPFetcher_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTPFetcher(time.Second, "").Fetch(ctx, srv.URL)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, ErrFetch)
}
