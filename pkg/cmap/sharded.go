package cmap

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map.
type Map[V any] struct {
	shards    []*shard[V]
	shardMask uint32
}

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// Option configures a Map.
type Option func(*config)

type config struct {
	shards int
}

// WithShardCount sets the number of shards. Counts that are not a positive
// power of two fall back to DefaultShardCount.
func WithShardCount(n int) Option {
	return func(c *config) {
		c.shards = n
	}
}

// New creates an empty map.
func New[V any](opts ...Option) *Map[V] {
	cfg := config{shards: DefaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	n := cfg.shards
	if n <= 0 || n&(n-1) != 0 {
		n = DefaultShardCount
	}

	m := &Map[V]{
		shards:    make([]*shard[V], n),
		shardMask: uint32(n - 1),
	}
	for i := range m.shards {
		m.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return m
}

func (m *Map[V]) getShard(key string) *shard[V] {
	return m.shards[murmur3.Sum32([]byte(key))&m.shardMask]
}

// Get retrieves a value by key.
func (m *Map[V]) Get(key string) (V, bool) {
	s := m.getShard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores a value.
func (m *Map[V]) Set(key string, value V) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// GetOrSet returns the existing value for key, or stores and returns
// value. loaded reports whether the value already existed.
func (m *Map[V]) GetOrSet(key string, value V) (actual V, loaded bool) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[key]; ok {
		return existing, true
	}
	s.items[key] = value
	return value, false
}

// Delete removes a key.
func (m *Map[V]) Delete(key string) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Pop removes key and returns its value.
func (m *Map[V]) Pop(key string) (V, bool) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return v, ok
}

// Count returns the total number of items.
func (m *Map[V]) Count() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}

// Range calls fn for each item until fn returns false. Shards are locked
// one at a time, so the view is not a snapshot, and fn must not modify m.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Keys returns all keys in no particular order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Count())
	m.Range(func(k string, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
