package lru

import (
	"testing"

	"github.com/haukened/rr-robots/internal/robots/domain"
)

func TestDecisionCache_HitMissAndPut(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	d := domain.Decision{Allowed: false, Line: 2, Text: "Disallow: /private"}

	if _, ok := c.Get("pol|/private/x"); ok {
		t.Fatalf("expected miss before put")
	}

	c.Put("pol|/private/x", d)

	got, ok := c.Get("pol|/private/x")
	if !ok || got.Allowed || got.Line != 2 {
		t.Fatalf("unexpected get: ok=%v got=%+v", ok, got)
	}

	hits, misses, _ := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses; want 1, 1", hits, misses)
	}
}

func TestDecisionCache_EvictionCounting(t *testing.T) {
	c, err := New(1)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	c.Put("a", domain.AllowByDefault())
	c.Put("b", domain.AllowByDefault()) // evicts "a"

	if _, _, ev := c.Stats(); ev != 1 {
		t.Errorf("evictions = %d, want 1", ev)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestDecisionCache_PurgeCountsEvictions(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Put("a", domain.AllowByDefault())
	c.Put("b", domain.AllowByDefault())

	c.Purge()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Purge, want 0", c.Len())
	}
	if _, _, ev := c.Stats(); ev != 2 {
		t.Errorf("evictions = %d after Purge, want 2", ev)
	}
}

// size <= 0 selects the disabled no-op cache rather than surfacing an error.
func TestDisabledCache(t *testing.T) {
	for _, size := range []int{0, -5} {
		c, err := New(size)
		if err != nil {
			t.Fatalf("New(%d) error: %v", size, err)
		}

		c.Put("k", domain.AllowByDefault())
		if _, ok := c.Get("k"); ok {
			t.Errorf("disabled cache must always miss")
		}
		if c.Len() != 0 {
			t.Errorf("Len() = %d, want 0", c.Len())
		}
		c.Purge()
		if h, m, e := c.Stats(); h != 0 || m != 0 || e != 0 {
			t.Errorf("Stats() = %d, %d, %d; want zeros", h, m, e)
		}
	}
}
