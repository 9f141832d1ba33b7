package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunJanitor sweeps sessions idle for longer than idle every interval until
// ctx is cancelled.
func RunJanitor(ctx context.Context, st Store, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Sweep(ctx, now.Add(-idle)); n > 0 {
				log.Info().Int("swept", n).Dur("idle", idle).Msg("expired idle sessions")
			}
		}
	}
}
