package assessment

import (
	"context"
	"time"
)

// RunTimer ticks e once per interval until the current attempt stops
// accepting ticks or ctx is done. Ticks never overlap: each one, including
// a forced submission, finishes before the next is awaited. Call it after
// Start; it returns immediately when no attempt is running.
func RunTimer(ctx context.Context, e *Engine, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	stopped := e.TimerStopped()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopped:
			return
		case <-t.C:
			e.Tick(ctx)
		}
	}
}
