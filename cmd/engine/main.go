package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/httpapi"
	"jobscout-engine/internal/poll"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/fetch"
	"jobscout-engine/internal/scrape/types"
)

func main() {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("JOBSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	envPath := filepath.Join(dataDir, ".env")

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return loadConfig(userCfgPath, envPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	var runStatus atomic.Value
	runStatus.Store(types.RunStatus{})

	hub := events.NewHub()
	sessions := &sessionHolder{}
	defer sessions.Close()

	search := func(ctx context.Context, q catalog.Query) ([]domain.Listing, error) {
		cfg := cfgVal.Load().(config.Config)

		var f types.Fetcher = scrape.NewHTTPFetcher(cfg)
		if cfg.Board.Fetcher == config.FetcherBrowser {
			s, err := sessions.Get(scrape.BrowserOptions(cfg))
			if err != nil {
				return nil, &fetch.FetchError{URL: cfg.Board.BaseURL, Err: err}
			}
			f = browser.PageFetcher{S: s}
		}

		s, err := scrape.NewSearcher(cfg, f)
		if err != nil {
			return nil, err
		}
		return s.Search(ctx, q)
	}

	scrapeInbox := func(ctx context.Context, email, password string) ([]domain.InboxMessage, error) {
		cfg := cfgVal.Load().(config.Config)
		s, err := sessions.Get(scrape.BrowserOptions(cfg))
		if err != nil {
			return nil, err
		}
		return s.ScrapeInbox(ctx, email, password)
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:         hub,
		CfgVal:      &cfgVal,
		RunStatus:   &runStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		LoadFileCfg: func() (config.Config, error) { return config.Load(userCfgPath) },
		Search:      search,
		ScrapeInbox: scrapeInbox,
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler:           httpapi.Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token := os.Getenv("JOBSCOUT_SHUTDOWN_TOKEN")
	if token == "" {
		token, err = randomToken(32)
		if err != nil {
			log.Fatal(err)
		}
		// the parent process reads this line to be able to stop the engine
		fmt.Printf("JOBSCOUT_SHUTDOWN_TOKEN=%s\n", token)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poll.StartPoller(ctx, &cfgVal, &runStatus, hub, search)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("engine listening on http://%s (config=%s fetcher=%s output=%s)", addr, userCfgPath, cfg.Board.Fetcher, cfg.OutputDir())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("engine stopped")
}

// loadConfig reads the YAML file, applies the .env / JOBSCOUT_* overlay and
// rejects configs with validation errors.
func loadConfig(path, envPath string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := config.OverlayEnv(&cfg, envPath); err != nil {
		return cfg, err
	}
	norm, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("level=warn msg=%q", "config: "+w)
	}
	if !vr.OK() {
		return cfg, errors.New("invalid config: " + strings.Join(vr.Errors, "; "))
	}
	return norm, nil
}
