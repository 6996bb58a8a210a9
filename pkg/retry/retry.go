// Package retry is the single shared backoff helper for transient
// store and network operations.
package retry

import (
	"context"
	"math/rand"
	"time"
)

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	JitterBound time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	if c.JitterBound < 0 {
		c.JitterBound = 0
	}
	return c
}

// Do runs op up to MaxAttempts times, sleeping 2^attempt*BaseDelay
// plus random jitter between attempts. After the last attempt the
// original error is returned to the caller unchanged.
func Do(ctx context.Context, cfg Config, op func() error) error {
	cfg = cfg.withDefaults()

	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}
		if !sleep(ctx, backoff(attempt, cfg.BaseDelay)+jitter(cfg.JitterBound)) {
			return err
		}
	}
	return err
}

func backoff(attempt int, base time.Duration) time.Duration {
	return time.Duration(1<<uint(attempt)) * base
}

func jitter(bound time.Duration) time.Duration {
	if bound <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(bound) + 1)) //nolint:gosec
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
