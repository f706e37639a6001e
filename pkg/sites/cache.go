package sites

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/waymarkhq/waymark/pkg/errors"
	"github.com/waymarkhq/waymark/pkg/logging"
)

// Source supplies the canonical location forest. Implementations are read
// once per process lifetime; see DocumentSource for the file-backed one.
type Source interface {
	Load(ctx context.Context) ([]*Site, error)
}

// Cache lazily loads the canonical world hierarchy exactly once and serves
// it for the remainder of the process. Concurrent callers during the first
// load share a single in-flight fetch rather than triggering redundant
// loads. A failed load leaves the cache unpopulated and the next call
// attempts the load again.
//
// The cached forest is immutable once loaded. Callers must not modify the
// returned trees; merges deep-copy before writing (see MergeObserved).
type Cache struct {
	source Source
	group  singleflight.Group

	mu     sync.RWMutex
	forest []*Site
	loaded bool
}

// NewCache creates a cache over the given source.
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Forest returns the canonical forest, loading it on first use.
func (c *Cache) Forest(ctx context.Context) ([]*Site, error) {
	c.mu.RLock()
	if c.loaded {
		forest := c.forest
		c.mu.RUnlock()
		return forest, nil
	}
	c.mu.RUnlock()

	result, err, shared := c.group.Do("canonical", func() (any, error) {
		// A caller that queued behind a successful load finds it here.
		c.mu.RLock()
		loaded, forest := c.loaded, c.forest
		c.mu.RUnlock()
		if loaded {
			return forest, nil
		}

		forest, err := c.source.Load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.forest = forest
		c.loaded = true
		c.mu.Unlock()

		logging.Ctx(ctx).Debug().
			Int("countries", len(forest)).
			Msg("Loaded canonical site hierarchy")
		return forest, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Ctx(ctx).Debug().Msg("Joined in-flight canonical hierarchy load")
	}
	return result.([]*Site), nil
}

// Country returns the canonical subtree for the named country, searching the
// whole forest case-insensitively. The returned node is part of the cached
// forest and must be treated as read-only.
func (c *Cache) Country(ctx context.Context, name string) (*Site, error) {
	forest, err := c.Forest(ctx)
	if err != nil {
		return nil, err
	}
	country := FindCountry(forest, name)
	if country == nil {
		return nil, errors.NewNotFoundError("country", name)
	}
	return country, nil
}
