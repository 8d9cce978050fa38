package cache_test

import (
	"testing"
	"time"

	"github.com/sikmo/useradmin/internal/cache"
)

func TestCacheSetGet(t *testing.T) {
	c := cache.New(time.Minute)

	c.Set("k", "v")

	v, ok := c.Get("k")

	if !ok || v != "v" {
		t.Fatalf("expected hit with v, got %v %v", v, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := cache.New(20 * time.Millisecond)

	c.Set("k", "v")

	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to be expired")
	}
}

func TestCacheDelete(t *testing.T) {
	c := cache.New(time.Minute)

	c.Set("k", "v")
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to be gone")
	}
}
