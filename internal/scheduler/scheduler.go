package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task now and then once per interval() until ctx is done.
// interval is re-read after every run, so config edits apply to the next
// tick. Runs never overlap: a slow run delays the next one.
func Every(ctx context.Context, interval func() time.Duration, name string, task Task) {
	for {
		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}

		d := interval()
		if d <= 0 {
			d = time.Minute
		}
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}
