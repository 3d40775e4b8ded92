package cache

import (
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/sentitube/sentitube/pkg/config"
	"github.com/sentitube/sentitube/pkg/logging"
)

// Cache memoizes completed ingest+score payloads keyed by video and model.
// Entries expire after the configured TTL; capacity overflow evicts the
// least recently used entry. A nil *Cache is valid and means caching is
// disabled: Get always misses and Set is a no-op.
type Cache struct {
	entries *lru.LRU[string, json.RawMessage]
}

// New creates the result cache, or nil when caching is disabled
func New(cfg *config.CacheConfig) *Cache {
	if !cfg.Enabled {
		logging.GetLogger().Info("Result cache disabled")
		return nil
	}

	logging.GetLogger().Info("Result cache enabled",
		zap.Int("max_entries", cfg.MaxEntries),
		zap.Duration("ttl", cfg.TTL))

	return &Cache{
		entries: lru.NewLRU[string, json.RawMessage](cfg.MaxEntries, nil, cfg.TTL),
	}
}

// Get returns the cached payload for the video/model pair. A hit refreshes
// the entry's recency; expired entries read as absent.
func (c *Cache) Get(videoID, model string) (json.RawMessage, bool) {
	if c == nil || c.entries == nil {
		return nil, false
	}
	return c.entries.Get(Key(videoID, model))
}

// Set stores a payload, evicting the oldest entry when past capacity.
// Re-inserting a key refreshes its position and TTL.
func (c *Cache) Set(videoID, model string, payload json.RawMessage) {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Add(Key(videoID, model), payload)
}

// Len returns the number of live entries
func (c *Cache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Key builds the composite cache key for a video/model pair
func Key(videoID, model string) string {
	return videoID + "|" + model
}
