package poll

import (
	"context"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/scheduler"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/types"
)

// StartPoller runs the watch queries on the configured interval until ctx is
// done. Disabled watch config is re-checked on every tick.
func StartPoller(ctx context.Context, cfgVal *atomic.Value, runStatus *atomic.Value, hub *events.Hub, search scrape.SearchFunc) {
	interval := func() time.Duration {
		cfg := cfgVal.Load().(config.Config)
		if !cfg.Watch.Enabled || cfg.Watch.IntervalMinutes <= 0 {
			return time.Minute
		}
		return time.Duration(cfg.Watch.IntervalMinutes) * time.Minute
	}

	go scheduler.Every(ctx, interval, "poll", func(ctx context.Context) error {
		cfg := cfgVal.Load().(config.Config)

		// If nothing enabled, skip quietly
		if !cfg.Watch.Enabled || len(cfg.Watch.Queries) == 0 {
			return nil
		}

		// Mark running
		st, _ := runStatus.Load().(types.RunStatus)
		st.Running = true
		st.LastRunAt = time.Now().Format(time.RFC3339)
		st.LastQuery = "watch (" + strconv.Itoa(len(cfg.Watch.Queries)) + " queries)"
		runStatus.Store(st)

		found, err := PollOnce(ctx, cfg, search, hub)

		// Update status
		st, _ = runStatus.Load().(types.RunStatus)
		st.Running = false
		st.LastFound = found
		if err != nil {
			st.LastError = err.Error()
		} else {
			st.LastError = ""
			st.LastOkAt = time.Now().Format(time.RFC3339)
			log.Printf("[poll] ok found=%d", found)
		}
		runStatus.Store(st)
		return err
	})
}
