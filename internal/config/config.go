// engine/internal/config/config.go
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Board struct {
		BaseURL        string `yaml:"base_url" json:"base_url"`
		UserAgent      string `yaml:"user_agent" json:"user_agent"`
		TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
		// Fetcher is "http" or "browser".
		Fetcher string `yaml:"fetcher" json:"fetcher"`
		// MarkersPath optionally points at a YAML marker table overriding
		// the built-in one.
		MarkersPath string `yaml:"markers_path" json:"markers_path"`
	} `yaml:"board" json:"board"`

	Browser struct {
		Headless     bool   `yaml:"headless" json:"headless"`
		LoginPath    string `yaml:"login_path" json:"login_path"`
		MessagesPath string `yaml:"messages_path" json:"messages_path"`
		SettleMS     int    `yaml:"settle_ms" json:"settle_ms"`
		LoginWaitMS  int    `yaml:"login_wait_ms" json:"login_wait_ms"`
		// Account is the board login email; its password lives in the keychain.
		Account string `yaml:"account" json:"account"`
	} `yaml:"browser" json:"browser"`

	Output struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"output" json:"output"`

	// Watch re-runs saved searches on an interval and refreshes their
	// output files.
	Watch struct {
		Enabled         bool         `yaml:"enabled" json:"enabled"`
		IntervalMinutes int          `yaml:"interval_minutes" json:"interval_minutes"`
		Parallel        int          `yaml:"parallel" json:"parallel"`
		Queries         []WatchQuery `yaml:"queries,omitempty" json:"queries"`
	} `yaml:"watch" json:"watch"`
}

type WatchQuery struct {
	Title    string `yaml:"job_title" json:"job_title"`
	Location string `yaml:"job_location,omitempty" json:"job_location,omitempty"`
}

func Defaults() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.DataDir = "."
	cfg.Board.BaseURL = "https://wellfound.com"
	cfg.Board.TimeoutSeconds = 20
	cfg.Board.Fetcher = FetcherHTTP
	cfg.Browser.Headless = true
	cfg.Browser.LoginPath = "/login"
	cfg.Browser.MessagesPath = "/jobs/messages"
	cfg.Browser.SettleMS = 2000
	cfg.Browser.LoginWaitMS = 5000
	cfg.Output.Dir = "out"
	cfg.Watch.IntervalMinutes = 60
	cfg.Watch.Parallel = 2
	return cfg
}

// OutputDir is output.dir, resolved against app.data_dir when relative.
func (c Config) OutputDir() string {
	if filepath.IsAbs(c.Output.Dir) || c.App.DataDir == "" {
		return c.Output.Dir
	}
	return filepath.Join(c.App.DataDir, c.Output.Dir)
}

// Load reads path over Defaults(), so keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
