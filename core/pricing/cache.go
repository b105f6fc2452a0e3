package pricing

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache keeps the most recently loaded table from a Source.
// Reloads are collapsed with singleflight so a burst of requests after expiry
// triggers a single backend read.
type Cache struct {
	source Source
	ttl    time.Duration

	mu    sync.RWMutex
	table *Table
	built time.Time

	sf singleflight.Group
}

// NewCache wraps source. A zero ttl keeps the first loaded table forever.
func NewCache(source Source, ttl time.Duration) *Cache {
	return &Cache{source: source, ttl: ttl}
}

// NewStaticCache returns a cache that always serves t.
func NewStaticCache(t *Table) *Cache {
	return &Cache{source: staticSource{table: t}, table: t, built: time.Now()}
}

// SourceName returns the name of the underlying source.
func (c *Cache) SourceName() string {
	return c.source.Name()
}

// Get returns the cached table, loading it if missing or expired.
func (c *Cache) Get(ctx context.Context) (*Table, error) {
	// Fast path
	c.mu.RLock()
	table, fresh := c.table, !c.isExpiredLocked()
	c.mu.RUnlock()
	if fresh {
		return table, nil
	}

	result, err, _ := c.sf.Do("table", func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		table, fresh := c.table, !c.isExpiredLocked()
		c.mu.RUnlock()
		if fresh {
			return table, nil
		}

		loaded, err := c.source.Load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.table = loaded
		c.built = time.Now()
		c.mu.Unlock()

		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Table), nil
}

// Invalidate drops the cached table so the next Get reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.table = nil
	c.mu.Unlock()
}

func (c *Cache) isExpiredLocked() bool {
	if c.table == nil {
		return true
	}
	if c.ttl == 0 {
		return false
	}
	return time.Since(c.built) > c.ttl
}

type staticSource struct {
	table *Table
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(_ context.Context) (*Table, error) { return s.table, nil }
