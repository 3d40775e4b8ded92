package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sentitube/sentitube/pkg/config"
)

func enabledConfig(maxEntries int, ttl time.Duration) *config.CacheConfig {
	return &config.CacheConfig{Enabled: true, MaxEntries: maxEntries, TTL: ttl}
}

func TestCache_GetMissOnEmpty(t *testing.T) {
	c := New(enabledConfig(50, time.Minute))

	if _, ok := c.Get("v1", "vader"); ok {
		t.Error("Get() on empty cache should miss")
	}
}

func TestCache_SetThenGet(t *testing.T) {
	c := New(enabledConfig(50, time.Minute))
	payload := json.RawMessage(`{"videoId":"v1"}`)

	c.Set("v1", "vader", payload)

	got, ok := c.Get("v1", "vader")
	if !ok {
		t.Fatal("Get() should hit within the TTL window")
	}
	if string(got) != string(payload) {
		t.Errorf("Get() = %s, want %s", got, payload)
	}

	// Same video under a different model is a distinct entry
	if _, ok := c.Get("v1", "openai"); ok {
		t.Error("Get() with different model should miss")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c := New(enabledConfig(50, 30*time.Millisecond))
	c.Set("v1", "vader", json.RawMessage(`1`))

	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("v1", "vader"); ok {
		t.Error("Get() after TTL should miss")
	}
}

func TestCache_CapacityEviction(t *testing.T) {
	c := New(enabledConfig(2, time.Minute))

	c.Set("a", "vader", json.RawMessage(`1`))
	c.Set("b", "vader", json.RawMessage(`2`))
	c.Set("c", "vader", json.RawMessage(`3`))

	if _, ok := c.Get("a", "vader"); ok {
		t.Error("Oldest entry should have been evicted")
	}
	if _, ok := c.Get("b", "vader"); !ok {
		t.Error("Entry b should survive")
	}
	if _, ok := c.Get("c", "vader"); !ok {
		t.Error("Entry c should survive")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCache_GetRefreshesRecency(t *testing.T) {
	c := New(enabledConfig(2, time.Minute))

	c.Set("a", "vader", json.RawMessage(`1`))
	c.Set("b", "vader", json.RawMessage(`2`))

	// Touch a so that b becomes the eviction candidate
	c.Get("a", "vader")
	c.Set("c", "vader", json.RawMessage(`3`))

	if _, ok := c.Get("a", "vader"); !ok {
		t.Error("Recently read entry should survive eviction")
	}
	if _, ok := c.Get("b", "vader"); ok {
		t.Error("Least recently used entry should have been evicted")
	}
}

func TestCache_DisabledIsNoOp(t *testing.T) {
	c := New(&config.CacheConfig{Enabled: false, MaxEntries: 50, TTL: time.Minute})
	if c != nil {
		t.Fatal("New() with caching disabled should return nil")
	}

	// Nil receiver still behaves
	c.Set("v1", "vader", json.RawMessage(`1`))
	if _, ok := c.Get("v1", "vader"); ok {
		t.Error("Disabled cache should always miss")
	}
	if c.Len() != 0 {
		t.Error("Disabled cache should report zero entries")
	}
}
