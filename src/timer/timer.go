package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Run calls fn every interval until ctx is cancelled.
//   - ctx is checked before every call, so no call starts after cancellation is observed
//   - a call in progress is never interrupted
//   - an error or panic from fn is logged and the loop keeps its schedule
func Run(ctx context.Context, interval time.Duration, fn func() error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Timer stopped", "reason", ctx.Err())
			return
		default:
		}

		if err := safeCall(fn); err != nil {
			slog.Error("Tick failed", "error", err)
		}

		select {
		case <-ctx.Done():
			slog.Debug("Timer stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
		}
	}
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
