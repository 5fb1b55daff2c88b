package httpapi

import (
	"context"
	"sync/atomic"

	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/events"
)

type Deps struct {
	Hub *events.Hub

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	RunStatus *atomic.Value // stores types.RunStatus

	// Config persistence. LoadFileCfg reads only the config file; LoadCfg
	// also applies the env overlay and yields the live config.
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	LoadFileCfg func() (config.Config, error)

	// Search runs one catalog query against the board (inject for testability).
	Search func(ctx context.Context, q catalog.Query) ([]domain.Listing, error)

	// ScrapeInbox is nil when no browser session is available.
	ScrapeInbox func(ctx context.Context, email, password string) ([]domain.InboxMessage, error)
}
