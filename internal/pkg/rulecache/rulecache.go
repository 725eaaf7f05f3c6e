// Package rulecache caches the admin-curated rules bundle so forge
// operations do not reload picklists and pricing tables on every call.
// The cache is an explicit value with an injected fetch function;
// everything downstream receives plain data.
package rulecache

import (
	"context"
	"sync"
	"time"

	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	"github.com/forgelight/forge-api/internal/pkg/clock"
)

// Bundle is everything rule-driven the forge needs for one operation.
type Bundle struct {
	Ruleset    *entities.Ruleset
	ConfigRows []entities.ConfigRow
	CostRows   []entities.CostRow
}

// FetchFunc loads a fresh bundle from storage.
type FetchFunc func(ctx context.Context) (*Bundle, error)

// Config contains configuration for the rule cache.
type Config struct {
	Fetch FetchFunc
	// TTL bounds how stale a cached bundle may get. Zero means cache
	// until Invalidate is called.
	TTL   time.Duration
	Clock clock.Clock
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Fetch == nil {
		return errors.InvalidArgument("fetch function cannot be nil")
	}
	return nil
}

// Cache is a read-through cache over one rules bundle.
type Cache struct {
	fetch FetchFunc
	ttl   time.Duration
	clock clock.Clock

	mu       sync.RWMutex
	bundle   *Bundle
	loadedAt time.Time
}

// New creates a rule cache.
func New(cfg *Config) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Cache{
		fetch: cfg.Fetch,
		ttl:   cfg.TTL,
		clock: c,
	}, nil
}

// Get returns the cached bundle, fetching when empty or expired. A failed
// refresh returns the error; it never serves a stale bundle past its TTL.
func (c *Cache) Get(ctx context.Context) (*Bundle, error) {
	c.mu.RLock()
	bundle := c.bundle
	loadedAt := c.loadedAt
	c.mu.RUnlock()

	if bundle != nil && !c.expired(loadedAt) {
		return bundle, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if c.bundle != nil && !c.expired(c.loadedAt) {
		return c.bundle, nil
	}

	fresh, err := c.fetch(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load rules bundle")
	}
	if fresh == nil {
		return nil, errors.Internal("rules fetch returned nil bundle")
	}

	c.bundle = fresh
	c.loadedAt = c.clock.Now()
	return fresh, nil
}

// Invalidate drops the cached bundle; the next Get fetches fresh data.
// Call after seeding or editing rules.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundle = nil
}

func (c *Cache) expired(loadedAt time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.clock.Now().Sub(loadedAt) >= c.ttl
}
