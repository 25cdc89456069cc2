package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestMemory() (*MemoryCache, *time.Time) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     func() time.Time { return current },
	}
	return c, &current
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c, _ := newTestMemory()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrMiss) {
		t.Fatalf("want ErrMiss, got %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	value, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(value) != "v" {
		t.Fatalf("value = %q, want v", value)
	}

	if err := c.Remove(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("after remove: want ErrMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c, current := newTestMemory()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}

	*current = current.Add(59 * time.Second)
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Fatalf("entry expired early: %v", err)
	}

	*current = current.Add(2 * time.Second)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("entry should have expired, got %v", err)
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c, _ := newTestMemory()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("old"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("new"), time.Minute); err != nil {
		t.Fatal(err)
	}
	value, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(value) != "new" {
		t.Fatalf("value = %q, want new", value)
	}
}
