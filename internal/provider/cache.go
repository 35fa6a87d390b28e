package provider

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/roach88/matex/internal/material"
)

// Key identifies a cached dataset.
type Key string

// DefaultKey is the cache key used when the caller has no other.
const DefaultKey Key = "default"

// Stats counts cache activity since creation.
type Stats struct {
	Hits    int64 `json:"hits"`
	Loads   int64 `json:"loads"`
	Fails   int64 `json:"fails"`
	Entries int   `json:"entries"`
}

// Cache memoizes one Source per key.
//
// Thread-safety: all methods are safe for concurrent use. Cached tables are
// immutable and shared between callers.
type Cache struct {
	source    Source
	snapshots SnapshotGenerator
	logger    *slog.Logger

	mu      sync.RWMutex
	entries map[Key]material.Table
	stats   Stats

	// epoch is bumped by Purge, gens[key] by Invalidate. A load stores its
	// result only if neither moved while it ran.
	epoch uint64
	gens  map[Key]uint64

	group singleflight.Group
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithSnapshotGenerator sets the snapshot id generator (UUIDv7Generator by
// default).
func WithSnapshotGenerator(g SnapshotGenerator) CacheOption {
	return func(c *Cache) { c.snapshots = g }
}

// WithLogger sets the logger for load and invalidation events. A nil
// logger is ignored.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates an empty cache over source.
func NewCache(source Source, opts ...CacheOption) *Cache {
	c := &Cache{
		source:    source,
		snapshots: UUIDv7Generator{},
		logger:    slog.New(slog.DiscardHandler),
		entries:   make(map[Key]material.Table),
		gens:      make(map[Key]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the wrapped source.
func (c *Cache) Source() Source {
	return c.source
}

// Get returns the table cached under key, loading it on first use.
//
// Concurrent Gets for an uncached key share a single Load. A failed,
// cancelled, or empty load returns a DATA_UNAVAILABLE error and leaves the
// key uncached, so the next Get retries. A Get that starts after
// Invalidate or Purge never joins a load that started before it.
func (c *Cache) Get(ctx context.Context, key Key) (material.Table, error) {
	t, ver, ok := c.lookup(key)
	if ok {
		return t, nil
	}

	v, err, _ := c.group.Do(ver.flightKey(key), func() (any, error) {
		// Another caller may have populated the key while we waited.
		if t, _, ok := c.lookup(key); ok {
			return t, nil
		}
		return c.load(ctx, key, ver)
	})
	if err != nil {
		return material.Table{}, err
	}

	t, ok = v.(material.Table)
	if !ok {
		return material.Table{}, fmt.Errorf("unexpected type from singleflight: got %T", v)
	}
	return t, nil
}

// version identifies the cache state a load started from.
type version struct {
	epoch uint64
	gen   uint64
}

func (v version) flightKey(key Key) string {
	return fmt.Sprintf("%s\x00%d.%d", key, v.epoch, v.gen)
}

func (c *Cache) lookup(key Key) (material.Table, version, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[key]
	if ok {
		c.stats.Hits++
	}
	return t, version{epoch: c.epoch, gen: c.gens[key]}, ok
}

func (c *Cache) load(ctx context.Context, key Key, ver version) (material.Table, error) {
	t, err := c.source.Load(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err == nil && t.Len() == 0 {
		err = &Error{Code: ErrCodeDataUnavailable, Message: "source returned no rows"}
	}
	if err != nil {
		c.mu.Lock()
		c.stats.Fails++
		c.mu.Unlock()
		c.logger.Debug("dataset load failed", "key", string(key), "error", err)
		return material.Table{}, unavailable(key, "dataset load failed", err)
	}

	t = t.WithSnapshot(c.snapshots.Generate())

	c.mu.Lock()
	c.stats.Loads++
	stale := ver != version{epoch: c.epoch, gen: c.gens[key]}
	if !stale {
		c.entries[key] = t
	}
	c.mu.Unlock()

	if stale {
		// Invalidated while loading: the callers that asked get the table,
		// the cache does not keep it.
		c.logger.Debug("dataset load superseded", "key", string(key), "snapshot", t.Snapshot())
		return t, nil
	}
	c.logger.Debug("dataset loaded", "key", string(key), "rows", t.Len(), "snapshot", t.Snapshot())
	return t, nil
}

// Invalidate drops the entry for key. The next Get reloads it, and a load
// already in progress for key is not cached. Reports whether an entry was
// dropped.
func (c *Cache) Invalidate(key Key) bool {
	c.mu.Lock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	c.gens[key]++
	c.mu.Unlock()

	if ok {
		c.logger.Debug("dataset invalidated", "key", string(key))
	}
	return ok
}

// Purge drops every entry. Loads in progress are not cached.
func (c *Cache) Purge() {
	c.mu.Lock()
	clear(c.entries)
	c.epoch++
	c.mu.Unlock()
	c.logger.Debug("dataset cache purged")
}

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.stats
	s.Entries = len(c.entries)
	return s
}
