package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"giftsleuth/store"
)

// Source is the read side of the tabular store.
type Source interface {
	ReadAll(tab string) ([]store.Row, error)
}

// Cache memoizes whole-tab reads per tab name with a TTL. One Cache is
// shared by every session in the process.
//
// Entry lifecycle: absent -> fresh (on read) -> stale (TTL elapsed or
// explicit invalidate) -> re-read -> fresh. A read against a stale entry
// re-reads the source synchronously before returning.
//
// Invalidation policy: the write path invalidates only the written tab.
// InvalidateAll exists but nothing in the app calls it outside tests;
// clearing unrelated tabs just forces needless source reads.
type Cache struct {
	src Source
	ttl time.Duration

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	rows    []store.Row
	fetched time.Time
}

func New(src Source, ttl time.Duration) *Cache {
	return &Cache{src: src, ttl: ttl, entries: make(map[string]entry)}
}

// ReadAll returns the cached rows for tab, re-reading the source when the
// entry is absent or stale. Concurrent re-reads of one tab are collapsed
// into a single source call. Callers must not modify the returned rows.
func (c *Cache) ReadAll(tab string) ([]store.Row, error) {
	c.mu.Lock()
	e, ok := c.entries[tab]
	if ok && time.Since(e.fetched) < c.ttl {
		c.mu.Unlock()
		return e.rows, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(tab, func() (any, error) {
		rows, err := c.src.ReadAll(tab)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[tab] = entry{rows: rows, fetched: time.Now()}
		c.mu.Unlock()
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]store.Row), nil
}

// Invalidate drops the entry for tab so the next read observes the store.
func (c *Cache) Invalidate(tab string) {
	c.mu.Lock()
	delete(c.entries, tab)
	c.mu.Unlock()
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
