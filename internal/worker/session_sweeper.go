package worker

import (
	"context"
	"time"

	"github.com/Jojo-not/Ticketing/internal/session"
)

// StartSessionSweeper removes idle sessions every interval until ctx is
// cancelled.
func StartSessionSweeper(ctx context.Context, sessions *session.Registry, interval time.Duration) {
	if sessions == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessions.Sweep(ctx)
			}
		}
	}()
}
