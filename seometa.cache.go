package seometa

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// RenderCache stores rendered page markup. Implementations must be safe for
// concurrent use.
type RenderCache interface {
	// Get returns the cached markup and whether it was found.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores markup for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete drops a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// PageKey identifies a rendered page for caching.
type PageKey struct {
	Path      string
	Site      string
	Language  string
	Subdomain string
}

// CacheKey returns the cache key of the page for a schema and placement:
// seometa.<schema>.<sha256(site, path, language, subdomain)>.<placement>
// The page fields are NUL-separated before hashing so no two pages share a
// digest.
func (k PageKey) CacheKey(schema string, placement Placement) string {
	page := strings.Join([]string{k.Site, k.Path, k.Language, k.Subdomain}, CacheKeyFieldSeparator)
	sum := sha256.Sum256([]byte(page))
	return strings.Join([]string{CacheKeyPrefix, schema, hex.EncodeToString(sum[:]), placement.String()}, CacheKeySeparator)
}

// MemoryRenderCacheConfig configures a MemoryRenderCache.
type MemoryRenderCacheConfig struct {
	// MaxEntries is the maximum number of cached pages. Default: 1000.
	MaxEntries int

	// MaxValueSize is the largest markup (bytes) that is cached. Default: 1MB.
	MaxValueSize int
}

// MemoryRenderCacheStats tracks cache performance.
type MemoryRenderCacheStats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	EntryCount int
}

type memoryCacheEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryRenderCache is an in-process RenderCache with TTL expiry and
// least-recently-used eviction.
type MemoryRenderCache struct {
	mu        sync.Mutex
	entries   map[string]*memoryCacheEntry
	evictList []string // LRU order, oldest first
	config    MemoryRenderCacheConfig
	stats     MemoryRenderCacheStats
}

// NewMemoryRenderCache creates an in-memory render cache.
func NewMemoryRenderCache(config MemoryRenderCacheConfig) *MemoryRenderCache {
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultRenderCacheMaxEntries
	}
	if config.MaxValueSize <= 0 {
		config.MaxValueSize = DefaultRenderCacheMaxSize
	}
	return &MemoryRenderCache{
		entries:   make(map[string]*memoryCacheEntry),
		evictList: make([]string, 0, config.MaxEntries),
		config:    config,
	}
}

// Get implements RenderCache.
func (c *MemoryRenderCache) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return "", false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.removeLocked(key)
		c.stats.Misses++
		return "", false, nil
	}

	c.touchLocked(key)
	c.stats.Hits++
	return entry.value, true, nil
}

// Set implements RenderCache. Values larger than MaxValueSize are ignored.
func (c *MemoryRenderCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(value) > c.config.MaxValueSize {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultRenderCacheTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.touchLocked(key)
	} else {
		for len(c.entries) >= c.config.MaxEntries && len(c.evictList) > 0 {
			c.removeLocked(c.evictList[0])
			c.stats.Evictions++
		}
		c.evictList = append(c.evictList, key)
	}
	c.entries[key] = &memoryCacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete implements RenderCache.
func (c *MemoryRenderCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)
	return nil
}

// Clear removes every entry.
func (c *MemoryRenderCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*memoryCacheEntry)
	c.evictList = c.evictList[:0]
}

// Stats returns a snapshot of the cache statistics.
func (c *MemoryRenderCache) Stats() MemoryRenderCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.EntryCount = len(c.entries)
	return stats
}

func (c *MemoryRenderCache) touchLocked(key string) {
	for i, k := range c.evictList {
		if k == key {
			c.evictList = append(c.evictList[:i], c.evictList[i+1:]...)
			break
		}
	}
	c.evictList = append(c.evictList, key)
}

func (c *MemoryRenderCache) removeLocked(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.evictList {
		if k == key {
			c.evictList = append(c.evictList[:i], c.evictList[i+1:]...)
			break
		}
	}
}
