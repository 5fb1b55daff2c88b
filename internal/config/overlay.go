// config/overlay.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "JOBSCOUT_"

// OverlayEnv loads envFile (if present) into the process environment and
// applies any JOBSCOUT_* variables on top of cfg. Variables already set in
// the environment win over the file.
func OverlayEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []string
	num := func(key string, dst *int) {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s%s=%q is not an integer", envPrefix, key, v))
			return
		}
		*dst = n
	}
	flag := func(key string, dst *bool) {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s%s=%q is not a boolean", envPrefix, key, v))
			return
		}
		*dst = b
	}

	num("PORT", &cfg.App.Port)
	str("DATA_DIR", &cfg.App.DataDir)
	str("BASE_URL", &cfg.Board.BaseURL)
	str("USER_AGENT", &cfg.Board.UserAgent)
	num("TIMEOUT_SECONDS", &cfg.Board.TimeoutSeconds)
	str("FETCHER", &cfg.Board.Fetcher)
	str("MARKERS_PATH", &cfg.Board.MarkersPath)
	flag("HEADLESS", &cfg.Browser.Headless)
	flag("WATCH", &cfg.Watch.Enabled)
	str("ACCOUNT", &cfg.Browser.Account)
	str("OUTPUT_DIR", &cfg.Output.Dir)

	if len(errs) > 0 {
		return fmt.Errorf("env overlay: %s", strings.Join(errs, "; "))
	}
	return nil
}
