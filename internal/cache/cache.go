// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/metrics"
)

// Eviction reasons reported to metrics.
const (
	EvictExpired  = "expired"
	EvictCapacity = "capacity"
	EvictManual   = "manual"
)

// DefaultTTL matches the recommendation endpoint's five minute window.
const DefaultTTL = 300 * time.Second

// Entry represents a cached value with its expiration time.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory cache with TTL expiration and an optional
// entry limit. Expired entries are never returned; they are removed lazily on
// Get and in bulk by Cleanup.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	stats      Stats
}

// Stats holds cache performance counters.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache whose entries live for ttl. A maxEntries of zero or
// less leaves the cache unbounded. Call Cleanup periodically (see Janitor)
// to reclaim expired entries that are never read again.
func New(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]Entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// TTL returns the default time-to-live applied by Set.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value. Expired entries count as misses and are removed.
func (c *Cache) Get(key string) (interface{}, bool) {
	now := c.now()

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordLookup(false)
		return nil, false
	}

	if !now.Before(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, ok := c.entries[key]; ok && !now.Before(current.ExpiresAt) {
			delete(c.entries, key)
			c.recordEvictions(EvictExpired, 1)
		}
		c.mu.Unlock()
		c.recordLookup(false)
		return nil, false
	}

	c.recordLookup(true)
	return entry.Data, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL. When the cache is full, expired
// entries are dropped first, then the entry closest to expiry.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	now := c.now()

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.makeRoomLocked(now)
	}
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: now.Add(ttl),
	}
	size := len(c.entries)
	c.mu.Unlock()

	c.setTotalKeys(size)
}

// makeRoomLocked frees at least one slot. Caller holds c.mu.
func (c *Cache) makeRoomLocked(now time.Time) {
	if expired := c.removeExpiredLocked(now); expired > 0 {
		c.recordEvictions(EvictExpired, expired)
		return
	}

	var (
		victim   string
		earliest time.Time
		found    bool
	)
	for key, entry := range c.entries {
		if !found || entry.ExpiresAt.Before(earliest) {
			victim, earliest, found = key, entry.ExpiresAt, true
		}
	}
	if found {
		delete(c.entries, victim)
		c.recordEvictions(EvictCapacity, 1)
	}
}

func (c *Cache) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.recordEvictions(EvictManual, 1)
	}
	c.setTotalKeys(size)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := len(c.entries)
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.recordEvictions(EvictManual, evictions)
	c.setTotalKeys(0)
}

// Len returns the number of stored entries, including expired ones not yet reclaimed.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cleanup removes every expired entry and returns how many were removed.
func (c *Cache) Cleanup() int {
	now := c.now()

	c.mu.Lock()
	removed := c.removeExpiredLocked(now)
	size := len(c.entries)
	c.mu.Unlock()

	c.recordEvictions(EvictExpired, removed)
	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(size)
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()
	metrics.SetCacheEntries(size)

	return removed
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache) recordLookup(hit bool) {
	c.stats.mu.Lock()
	if hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.stats.mu.Unlock()
	metrics.RecordCacheLookup(hit)
}

func (c *Cache) recordEvictions(reason string, n int) {
	if n <= 0 {
		return
	}
	c.stats.mu.Lock()
	c.stats.Evictions += int64(n)
	c.stats.mu.Unlock()
	metrics.RecordCacheEviction(reason, n)
}

func (c *Cache) setTotalKeys(n int) {
	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(n)
	c.stats.mu.Unlock()
	metrics.SetCacheEntries(n)
}

// Janitor runs Cleanup on a fixed interval. It implements suture.Service so
// the supervisor tree owns its lifetime.
type Janitor struct {
	cache    *Cache
	interval time.Duration
}

// NewJanitor creates a janitor for c. A non-positive interval defaults to one minute.
func NewJanitor(c *Cache, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{cache: c, interval: interval}
}

// Serve sweeps expired entries until ctx is canceled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := j.cache.Cleanup(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Expired cache entries swept")
			}
		}
	}
}

// String names the service in supervisor logs.
func (j *Janitor) String() string {
	return "cache-janitor"
}

// GenerateKey creates a cache key from a namespace and parameters
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
