package service

import (
	"context"
	"time"
)

// DefaultSweepInterval is how often expired sessions are purged when no
// interval is configured.
const DefaultSweepInterval = time.Hour

// StartSweeper runs SweepExpired on a fixed cadence until ctx is canceled.
// The sweep is decoupled from request handling: a growing session table
// costs a periodic background pass, never per-request latency. One sweep
// runs immediately at startup to clear anything left from a previous run.
func (s *AuthService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	go func() {
		s.SweepExpired(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepExpired(ctx)
			}
		}
	}()
}
