package repository

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMaxEntries = 10000
	sweepInterval     = time.Minute
)

type memoryEntry struct {
	value     string
	storedAt  time.Time
	expiresAt time.Time
}

// MemoryCache is the in-process CacheRepository used when no Redis is
// configured. Expired entries are swept periodically; once maxEntries is
// reached the oldest entry makes room for the new one.
type MemoryCache struct {
	mu         sync.RWMutex
	data       map[string]memoryEntry
	maxEntries int
	now        func() time.Time
	stopSweep  chan struct{}
	stopOnce   sync.Once
}

func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	c := &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
		stopSweep:  make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

func (m *MemoryCache) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.sweepLocked()
			m.mu.Unlock()
		case <-m.stopSweep:
			return
		}
	}
}

func (m *MemoryCache) Stop() {
	m.stopOnce.Do(func() { close(m.stopSweep) })
}

func (m *MemoryCache) sweepLocked() {
	now := m.now()
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
		}
	}
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()

	if !ok || entry.expired(m.now()) {
		return "", false
	}
	return entry.value, true
}

// Set stores value; a zero ttl never expires.
func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	now := m.now()
	entry := memoryEntry{value: value, storedAt: now}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists && len(m.data) >= m.maxEntries {
		m.sweepLocked()
		if len(m.data) >= m.maxEntries {
			m.evictOldestLocked()
		}
	}
	m.data[key] = entry
	return nil
}

func (m *MemoryCache) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for key, entry := range m.data {
		if !found || entry.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = key, entry.storedAt, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
