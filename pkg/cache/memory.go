package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// memoryShards is the shard count of a MemoryCache; a power of two so the
// shard index is a mask.
const memoryShards = 16

// MemoryCache is a sharded in-process cache.
//
// With capacity 0 it grows without bound. With a positive capacity each
// shard keeps at most ceil(capacity/shards) entries and evicts the least
// recently used one on overflow, so the total bound is approximate.
type MemoryCache struct {
	shards   []*memoryShard
	mask     uint64
	capacity int // per shard, 0 = unbounded

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type memoryShard struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List // front = most recently used
}

type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// MemoryStats is a snapshot of MemoryCache counters.
type MemoryStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// NewMemoryCache creates an in-memory cache. capacity <= 0 means unbounded.
func NewMemoryCache(capacity int) *MemoryCache {
	return newMemoryCache(capacity, memoryShards)
}

func newMemoryCache(capacity, shards int) *MemoryCache {
	c := &MemoryCache{
		shards: make([]*memoryShard, shards),
		mask:   uint64(shards - 1),
	}
	if capacity > 0 {
		c.capacity = (capacity + shards - 1) / shards
	}
	for i := range c.shards {
		c.shards[i] = &memoryShard{
			entries: make(map[string]*list.Element),
			lru:     list.New(),
		}
	}
	return c
}

func (c *MemoryCache) shard(key string) *memoryShard {
	return c.shards[shardHash(key)&c.mask]
}

// Get retrieves a value and marks it as recently used.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, false, nil
	}
	e := el.Value.(*memoryEntry)
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.lru.Remove(el)
		delete(s.entries, key)
		c.misses.Add(1)
		return nil, false, nil
	}
	s.lru.MoveToFront(el)
	c.hits.Add(1)
	return e.data, true, nil
}

// Set stores a value, evicting least recently used entries when the shard
// is full. The slice is stored as-is; callers must not modify it afterwards.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		e := el.Value.(*memoryEntry)
		e.data, e.expiresAt = data, expiresAt
		s.lru.MoveToFront(el)
		return nil
	}

	for c.capacity > 0 && s.lru.Len() >= c.capacity {
		oldest := s.lru.Back()
		if oldest == nil {
			break
		}
		s.lru.Remove(oldest)
		delete(s.entries, oldest.Value.(*memoryEntry).key)
		c.evictions.Add(1)
	}

	s.entries[key] = s.lru.PushFront(&memoryEntry{key: key, data: data, expiresAt: expiresAt})
	return nil
}

// Delete removes a value.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[key]; ok {
		s.lru.Remove(el)
		delete(s.entries, key)
	}
	return nil
}

// Clear removes all entries. Counters are kept.
func (c *MemoryCache) Clear(ctx context.Context) error {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[string]*list.Element)
		s.lru.Init()
		s.mu.Unlock()
	}
	return nil
}

// Len returns the number of stored entries, including expired ones that
// have not been looked up since expiring.
func (c *MemoryCache) Len(ctx context.Context) (int, error) {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n, nil
}

// Stats returns hit, miss and eviction counters.
func (c *MemoryCache) Stats() MemoryStats {
	return MemoryStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Close does nothing.
func (c *MemoryCache) Close() error { return nil }

var _ Cache = (*MemoryCache)(nil)
