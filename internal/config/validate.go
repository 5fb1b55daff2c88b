package config

import (
	"fmt"
	"net/url"
	"strings"

	"jobscout-engine/internal/catalog"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Board.BaseURL = strings.TrimRight(strings.TrimSpace(out.Board.BaseURL), "/")
	out.Board.Fetcher = strings.ToLower(strings.TrimSpace(out.Board.Fetcher))
	out.Board.UserAgent = strings.TrimSpace(out.Board.UserAgent)
	out.Board.MarkersPath = strings.TrimSpace(out.Board.MarkersPath)
	out.Browser.Account = strings.TrimSpace(out.Browser.Account)
	if out.Board.Fetcher == "" {
		out.Board.Fetcher = FetcherHTTP
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if strings.TrimSpace(out.App.DataDir) == "" {
		res.addErr("app.data_dir is required")
	}

	if u, err := url.Parse(out.Board.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("board.base_url must be an absolute URL, got %q", out.Board.BaseURL)
	} else if u.Scheme != "https" {
		res.addWarn("board.base_url uses %s; the live board is served over https.", u.Scheme)
	}

	if out.Board.TimeoutSeconds <= 0 {
		res.addErr("board.timeout_seconds must be > 0")
	} else if out.Board.TimeoutSeconds > 120 {
		res.addWarn("board.timeout_seconds is very high (%d); a stuck request will hold the search that long.", out.Board.TimeoutSeconds)
	}

	switch out.Board.Fetcher {
	case FetcherHTTP, FetcherBrowser:
	default:
		res.addErr("board.fetcher must be %q or %q, got %q", FetcherHTTP, FetcherBrowser, out.Board.Fetcher)
	}

	if !strings.HasPrefix(out.Browser.LoginPath, "/") {
		res.addErr("browser.login_path must start with /")
	}
	if !strings.HasPrefix(out.Browser.MessagesPath, "/") {
		res.addErr("browser.messages_path must start with /")
	}
	if out.Browser.SettleMS < 0 {
		res.addErr("browser.settle_ms must be >= 0")
	}
	if out.Browser.LoginWaitMS < 0 {
		res.addErr("browser.login_wait_ms must be >= 0")
	}
	if out.Browser.Account == "" {
		res.addWarn("browser.account is empty; /message requests must carry an email.")
	}

	if strings.TrimSpace(out.Output.Dir) == "" {
		res.addErr("output.dir is required")
	}

	// watch
	seen := map[WatchQuery]bool{}
	var queries []WatchQuery
	for i, q := range out.Watch.Queries {
		q.Title = strings.TrimSpace(q.Title)
		q.Location = strings.TrimSpace(q.Location)
		if err := (catalog.Query{Title: q.Title, Location: q.Location}).Validate(); err != nil {
			res.addErr("watch.queries[%d]: %v", i, err)
			continue
		}
		if seen[q] {
			res.addWarn("watch.queries[%d] duplicates an earlier query; dropped.", i)
			continue
		}
		seen[q] = true
		queries = append(queries, q)
	}
	out.Watch.Queries = queries
	if out.Watch.Enabled {
		if out.Watch.IntervalMinutes <= 0 {
			res.addErr("watch.interval_minutes must be > 0 when watch.enabled=true")
		} else if out.Watch.IntervalMinutes < 10 {
			res.addWarn("watch.interval_minutes is very low (%d) and may get the engine blocked.", out.Watch.IntervalMinutes)
		}
		if out.Watch.Parallel <= 0 {
			res.addErr("watch.parallel must be > 0 when watch.enabled=true")
		}
		if len(out.Watch.Queries) == 0 {
			res.addWarn("watch.enabled=true but watch.queries is empty; nothing will run.")
		}
	}

	return out, res
}
