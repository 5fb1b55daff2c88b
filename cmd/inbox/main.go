// Command inbox logs into the board account in a real browser and dumps the
// messages inbox as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/output"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/secrets"
)

func main() {
	var (
		configPath = flag.String("config", filepath.Join("config", "config.yml"), "config file")
		envPath    = flag.String("env", ".env", "dotenv file with JOBSCOUT_* overrides")
		email      = flag.String("email", "", "board account email (default: browser.account)")
		headful    = flag.Bool("headful", false, "show the browser window")
		out        = flag.String("out", "", "write messages to this JSON file instead of stdout")
		savePw     = flag.Bool("save-password", false, "store JOBSCOUT_PASSWORD in the OS keychain and exit")
	)
	flag.Parse()
	os.Exit(run(*configPath, *envPath, *email, *headful, *out, *savePw))
}

func run(configPath, envPath, email string, headful bool, out string, savePw bool) int {
	cfg, err := config.Load(configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config load failed (%s): %v", configPath, err)
		return 1
	}
	if err := config.OverlayEnv(&cfg, envPath); err != nil {
		log.Print(err)
		return 1
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		log.Printf("invalid config: %s", strings.Join(vr.Errors, "; "))
		return 1
	}

	if email == "" {
		email = cfg.Browser.Account
	}
	if email == "" {
		fmt.Fprintln(os.Stderr, "-email is required (or set browser.account / JOBSCOUT_ACCOUNT)")
		return 2
	}

	// JOBSCOUT_PASSWORD wins over the keychain for one-off runs.
	explicit := os.Getenv("JOBSCOUT_PASSWORD")
	if savePw {
		if err := secrets.SetBoardPassword(email, explicit); err != nil {
			log.Printf("store password: %v", err)
			return 1
		}
		log.Printf("[inbox] password stored for %s", email)
		return 0
	}
	password, err := secrets.ResolveBoardPassword(email, explicit)
	if err != nil {
		log.Print(err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := scrape.BrowserOptions(cfg)
	if headful {
		opts.Headless = false
	}
	s, err := browser.Launch(opts)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer s.Close()

	msgs, err := s.ScrapeInbox(ctx, email, password)
	if err != nil {
		log.Print(err)
		return 1
	}

	if out == "" {
		if err := output.Encode(os.Stdout, msgs); err != nil {
			log.Print(err)
			return 1
		}
		return 0
	}
	if err := output.WriteJSON(out, msgs); err != nil {
		log.Print(err)
		return 1
	}
	log.Printf("[inbox] wrote %d messages to %s", len(msgs), out)
	return 0
}
