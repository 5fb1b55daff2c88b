package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"jobscout-engine/internal/browser"
)

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownHandler(token *string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard (covers typical desktop usage)
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// RemoteAddr can sometimes be just a host; fall back safely
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Token guard
		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}

// sessionHolder launches the browser on first use and keeps it for the
// engine's lifetime. A changed browser config relaunches it.
type sessionHolder struct {
	mu   sync.Mutex
	s    *browser.Session
	opts browser.Options
}

func (h *sessionHolder) Get(opts browser.Options) (*browser.Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.s != nil && h.opts == opts {
		return h.s, nil
	}
	if h.s != nil {
		log.Printf("[browser] config changed, relaunching")
		if err := h.s.Close(); err != nil {
			log.Printf("[browser] close: %v", err)
		}
		h.s = nil
	}

	s, err := browser.Launch(opts)
	if err != nil {
		return nil, err
	}
	h.s, h.opts = s, opts
	return s, nil
}

func (h *sessionHolder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.s != nil {
		if err := h.s.Close(); err != nil {
			log.Printf("[browser] close: %v", err)
		}
		h.s = nil
	}
}
