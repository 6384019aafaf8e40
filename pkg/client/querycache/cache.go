// Package querycache keeps API query results in memory with per-resource
// freshness windows so repeated reads do not hit the network.
package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// NeverStale marks a resource whose cached value stays fresh until it is
// invalidated.
const NeverStale = time.Duration(math.MaxInt64)

const (
	DefaultFreshness  = 30 * time.Minute
	DefaultRetries    = 1
	DefaultRetryDelay = time.Second
)

// DefaultFreshnessByResource applies when Config.Freshness is nil.
func DefaultFreshnessByResource() map[string]time.Duration {
	return map[string]time.Duration{
		"courses":       NeverStale,
		"team":          NeverStale,
		"announcements": 10 * time.Minute,
		"testimonials":  10 * time.Minute,
	}
}

// Config tunes a Cache.
type Config struct {
	Freshness        map[string]time.Duration
	DefaultFreshness time.Duration
	// Retries is the number of extra attempts after a failed fetch.
	Retries    int
	RetryDelay time.Duration
	Persister  Persister
	Logger     *zap.Logger
}

// DefaultConfig retries once after a one second pause.
func DefaultConfig() Config {
	return Config{
		Freshness:        DefaultFreshnessByResource(),
		DefaultFreshness: DefaultFreshness,
		Retries:          DefaultRetries,
		RetryDelay:       DefaultRetryDelay,
	}
}

type entry struct {
	resource  string
	value     interface{}
	raw       json.RawMessage
	fetchedAt time.Time
}

// Cache is safe for concurrent use. Concurrent fetches of one key share a
// single network call.
type Cache struct {
	cfg   Config
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*entry
}

// New builds a Cache with defaults filled in.
func New(cfg Config) *Cache {
	if cfg.Freshness == nil {
		cfg.Freshness = DefaultFreshnessByResource()
	}
	if cfg.DefaultFreshness <= 0 {
		cfg.DefaultFreshness = DefaultFreshness
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Cache{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Key builds the cache key for a resource and its filter options. Filters
// are serialised as JSON so equal options map to the same key.
func Key(resource string, filter interface{}) string {
	if filter == nil {
		return resource
	}
	b, err := json.Marshal(filter)
	if err != nil || string(b) == "null" || string(b) == "{}" {
		return resource
	}
	return resource + ":" + string(b)
}

// FreshnessFor returns how long values of resource stay fresh.
func (c *Cache) FreshnessFor(resource string) time.Duration {
	if d, ok := c.cfg.Freshness[resource]; ok {
		return d
	}
	return c.cfg.DefaultFreshness
}

func (c *Cache) fresh(e *entry) bool {
	window := c.FreshnessFor(e.resource)
	if window == NeverStale {
		return true
	}
	return c.now().Sub(e.fetchedAt) < window
}

// Fetch returns the cached value for resource+filter when it is fresh and
// otherwise calls fetch, retrying once by default, and stores the result.
func Fetch[T any](ctx context.Context, c *Cache, resource string, filter interface{}, fetch func(context.Context) (T, error)) (T, error) {
	key := Key(resource, filter)
	if v, ok := lookup[T](c, key); ok {
		return v, nil
	}

	res, err, shared := c.group.Do(key, func() (interface{}, error) {
		v, err := c.withRetry(ctx, key, func() (interface{}, error) { return fetch(ctx) })
		if err != nil {
			return nil, err
		}
		c.store(key, resource, v)
		return v, nil
	})
	if shared {
		c.cfg.Logger.Debug("query deduplicated", zap.String("key", key))
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Set stores a value directly, e.g. after a mutation returned fresh data.
func Set[T any](c *Cache, resource string, filter interface{}, value T) {
	c.store(Key(resource, filter), resource, value)
}

func lookup[T any](c *Cache, key string) (T, bool) {
	var zero T
	c.mu.RLock()
	e, ok := c.entries[key]
	var value interface{}
	var raw json.RawMessage
	if ok {
		value, raw = e.value, e.raw
	}
	c.mu.RUnlock()
	if !ok || !c.fresh(e) {
		return zero, false
	}
	if v, ok := value.(T); ok {
		return v, true
	}
	if raw == nil {
		return zero, false
	}
	// restored entries arrive as JSON until first typed read
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		c.cfg.Logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}
	c.mu.Lock()
	if cur, ok := c.entries[key]; ok && cur == e {
		e.value = v
	}
	c.mu.Unlock()
	return v, true
}

func (c *Cache) store(key, resource string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = &entry{resource: resource, value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

func (c *Cache) withRetry(ctx context.Context, key string, fn func() (interface{}, error)) (interface{}, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		if attempt > 0 {
			c.cfg.Logger.Debug("retrying query", zap.String("key", key), zap.Int("attempt", attempt), zap.Error(lastErr))
			if c.cfg.RetryDelay > 0 {
				timer := time.NewTimer(c.cfg.RetryDelay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil, ctx.Err()
				case <-timer.C:
				}
			}
		}
		v, err := fn()
		if err == nil {
			return v, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("query %s: %w", key, lastErr)
}

// Invalidate drops every entry of resource so the next read refetches.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if e.resource == resource {
			delete(c.entries, key)
		}
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

// Len reports the number of cached keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
