// Package memory is the process-local location cache. Entries are checked
// against the TTL lazily on read; expired entries stay until overwritten or cleared.
package memory

import (
	"context"
	"sync"
	"time"

	"truffle_shuffle/internal/adapters/observability"
	"truffle_shuffle/internal/domain"
)

type entry struct {
	venues    []domain.Venue
	createdAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock is New with an injectable clock.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{entries: make(map[string]entry), ttl: ttl, now: now}
}

func (c *Cache) Get(_ context.Context, key string) ([]domain.Venue, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		observability.ObserveCache("memory", "miss")
		return nil, false, nil
	}
	if c.now().Sub(e.createdAt) >= c.ttl {
		observability.ObserveCache("memory", "expired")
		return nil, false, nil
	}
	observability.ObserveCache("memory", "hit")
	out := make([]domain.Venue, len(e.venues))
	copy(out, e.venues)
	return out, true, nil
}

// Set replaces any prior entry for key; concurrent writers race and the last one wins.
func (c *Cache) Set(_ context.Context, key string, venues []domain.Venue) error {
	cp := make([]domain.Venue, len(venues))
	copy(cp, venues)

	c.mu.Lock()
	c.entries[key] = entry{venues: cp, createdAt: c.now()}
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	observability.ObserveCache("memory", "clear")
	return nil
}

// Len counts stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
