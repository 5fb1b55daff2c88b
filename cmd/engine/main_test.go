package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/config"
)

func TestShutdownHandler(t *testing.T) {
	token := "secret"
	srv := &http.Server{}
	h := shutdownHandler(&token, srv)

	req := httptest.NewRequest(http.MethodGet, "/shutdown", nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.RemoteAddr = "10.0.0.8:5555"
	req.Header.Set("X-Shutdown-Token", token)
	rec = httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	req.Header.Set("X-Shutdown-Token", "wrong")
	rec = httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	req.Header.Set("X-Shutdown-Token", token)
	rec = httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRandomToken(t *testing.T) {
	a, err := randomToken(16)
	require.NoError(t, err)
	b, err := randomToken(16)
	require.NoError(t, err)
	require.Len(t, a, 32)
	require.NotEqual(t, a, b)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(p, []byte("board:\n  base_url: \"https://wellfound.com/\"\n"), 0o644))
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("JOBSCOUT_FETCHER=BROWSER\n"), 0o644))
	t.Setenv("JOBSCOUT_FETCHER", "")
	require.NoError(t, os.Unsetenv("JOBSCOUT_FETCHER"))

	cfg, err := loadConfig(p, env)
	require.NoError(t, err)
	require.Equal(t, "https://wellfound.com", cfg.Board.BaseURL)
	require.Equal(t, config.FetcherBrowser, cfg.Board.Fetcher)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte("app:\n  port: -1\n"), 0o644))

	_, err := loadConfig(p, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "app.port")
}
