package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{Hub: d.Hub}.Health,
	}))

	// Search
	sh := SearchHandler{RunStatus: d.RunStatus, Hub: d.Hub, Run: d.Search}
	mux.HandleFunc("/catalog", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Catalog,
	}))
	mux.HandleFunc("/search-jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Search,
	}))
	mux.HandleFunc("/search-jobs/last", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Last,
	}))

	// Inbox
	ih := InboxHandler{CfgVal: d.CfgVal, Hub: d.Hub, ScrapeInbox: d.ScrapeInbox}
	mux.HandleFunc("/message", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Message,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		LoadFileCfg: d.LoadFileCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sec := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/board", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sec.SetBoardPassword,
		http.MethodDelete: sec.DeleteBoardPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

// Handler wraps h in the standard middleware stack.
func Handler(h http.Handler) http.Handler {
	return Chain(h, RequestID, Recover, AccessLog, Cors)
}
