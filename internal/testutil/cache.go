package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"library-catalog/pkg/cache"
)

// MemoryCache is a cache.Cache that round-trips values through JSON
// and honours ttl, so cached reads behave like the Redis implementation.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   time.Time

	// Err, when set, is returned by every operation
	Err error

	Hits   int
	Misses int
}

type memoryItem struct {
	raw       []byte
	ttl       time.Duration
	expiresAt time.Time // zero = no expiry
}

var _ cache.Cache = (*MemoryCache)(nil)

// NewMemoryCache starts its clock at a fixed instant; use Advance to move it
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Advance moves the cache clock forward, expiring entries whose ttl has passed
func (m *MemoryCache) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// TTL returns the ttl key was last written with
func (m *MemoryCache) TTL(key string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.lookup(key)
	return item.ttl, ok
}

func (m *MemoryCache) lookup(key string) (memoryItem, bool) {
	item, ok := m.items[key]
	if !ok {
		return memoryItem{}, false
	}
	if !item.expiresAt.IsZero() && !m.now.Before(item.expiresAt) {
		delete(m.items, key)
		return memoryItem{}, false
	}
	return item, true
}

func (m *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}

	item, ok := m.lookup(key)
	if !ok {
		m.Misses++
		return false, nil
	}
	m.Hits++
	return true, json.Unmarshal(item.raw, dest)
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	item := memoryItem{raw: raw, ttl: ttl}
	if ttl > 0 {
		item.expiresAt = m.now.Add(ttl)
	}
	m.items[key] = item
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	for _, key := range keys {
		delete(m.items, key)
	}
	return nil
}

func (m *MemoryCache) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

// Has reports whether key is currently cached
func (m *MemoryCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.lookup(key)
	return ok
}
