package cache

import (
	"context"
	"sync"
	"time"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

// FetchFunc performs one adapter call.
type FetchFunc func(ctx context.Context) (domain.SignalReading, error)

// SignalCache memoizes adapter readings by key with a TTL. Retention policy
// belongs to the caller; the aggregation engine only sees this contract.
//
// Policy (serve-stale-on-error): a hit within TTL returns the stored reading
// without invoking fetch. On miss or expiry fetch runs exactly once; success
// replaces the entry, failure never creates or refreshes an entry. If a prior
// successful reading exists it is served marked stale, so a transient failure
// never loses a previously good window; otherwise the failure propagates.
type SignalCache interface {
	GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (domain.SignalReading, error)
}

type memoryEntry struct {
	mu      sync.Mutex
	reading domain.SignalReading
	expires time.Time
	has     bool
}

// MemoryCache is the in-process SignalCache. Each key has its own lock, so a
// slow fetch for one source never blocks lookups of another.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) entry(key string) *memoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &memoryEntry{}
		c.entries[key] = e
	}
	return e
}

func (c *MemoryCache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (domain.SignalReading, error) {
	e := c.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()

	now := c.now()
	if e.has && now.Before(e.expires) {
		return e.reading, nil
	}

	reading, err := fetch(ctx)
	if err == nil {
		e.reading = reading
		e.expires = now.Add(ttl)
		e.has = true
		return reading, nil
	}

	if e.has {
		stale := e.reading
		stale.Stale = true
		return stale, nil
	}
	return domain.SignalReading{}, err
}
