// Package ratelimit implements the courtesy throttling used between page
// fetches. The site gets a fixed pause after every successful request; this
// is politeness, not backoff.
package ratelimit

import (
	"context"
	"time"
)

// Delayer pauses for a fixed interval, honoring context cancellation.
// A zero or negative interval makes Delay a no-op.
type Delayer struct {
	interval time.Duration
}

// NewDelayer creates a Delayer with the given fixed interval.
func NewDelayer(interval time.Duration) *Delayer {
	return &Delayer{interval: interval}
}

// Delay blocks for the configured interval or until the context is
// canceled, whichever comes first.
func (d *Delayer) Delay(ctx context.Context) error {
	if d == nil || d.interval <= 0 {
		return nil
	}

	t := time.NewTimer(d.interval)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Interval reports the configured pause.
func (d *Delayer) Interval() time.Duration {
	if d == nil {
		return 0
	}
	return d.interval
}
