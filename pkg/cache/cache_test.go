package cache_test

import (
	"testing"
	"time"

	"github.com/mohammadpnp/rental-import/pkg/cache"
)

func TestCacheHitBeforeTTL(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	c := cache.New[int](time.Minute, func() time.Time { return now })

	c.Set("k", 42)
	now = now.Add(59 * time.Second)

	got, ok := c.Get("k")
	if !ok || got != 42 {
		t.Fatalf("expected a hit with 42, got %d ok=%v", got, ok)
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	c := cache.New[int](time.Minute, func() time.Time { return now })

	c.Set("k", 42)
	now = now.Add(time.Minute + time.Second)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry to be expired")
	}

	// A fresh Set after expiry is served again.
	c.Set("k", 7)
	got, ok := c.Get("k")
	if !ok || got != 7 {
		t.Fatalf("expected a hit with 7, got %d ok=%v", got, ok)
	}
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	t.Parallel()

	c := cache.New[string](time.Minute, nil)

	if _, ok := c.Get("absent"); ok {
		t.Fatal("expected a miss")
	}
}

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()

	c := cache.New[string](time.Minute, nil)

	c.Set("k", "v")
	c.Invalidate("k")

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected invalidated key to miss")
	}
}
