package feed

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL = time.Hour
	cacheKey        = "podcast"
)

// Source is anything that can produce a fresh copy of the podcast.
type Source interface {
	Fetch(ctx context.Context) (*PodcastData, error)
}

var _ Source = (*Fetcher)(nil)

// Cache keeps the last successfully fetched podcast for ttl. A ttl of
// zero or less disables caching. Concurrent misses share one fetch.
type Cache struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	data      *PodcastData
	fetchedAt time.Time
}

func NewCache(source Source, ttl time.Duration) *Cache {
	return &Cache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the cached podcast while it is fresh and fetches it otherwise.
func (c *Cache) Get(ctx context.Context) (*PodcastData, error) {
	if data, ok := c.fresh(); ok {
		return data, nil
	}
	return c.load(ctx)
}

// Refresh fetches the podcast regardless of the cached entry's age.
func (c *Cache) Refresh(ctx context.Context) (*PodcastData, error) {
	return c.load(ctx)
}

// Invalidate drops the cached entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = nil
	c.fetchedAt = time.Time{}
}

// FetchedAt reports when the cached entry was stored, or the zero time
// when nothing is cached.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.fetchedAt
}

func (c *Cache) fresh() (*PodcastData, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.data, true
}

// load runs one shared fetch per key. The fetch is detached from the
// caller's cancellation so one aborted request cannot fail the others;
// each caller stops waiting when its own context is done.
func (c *Cache) load(ctx context.Context) (*PodcastData, error) {
	fetchCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(cacheKey, func() (interface{}, error) {
		data, err := c.source.Fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.data = data
			c.fetchedAt = c.now()
			c.mu.Unlock()
		}

		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*PodcastData), nil
	}
}
