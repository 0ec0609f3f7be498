package dataset

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoaderFunc reads and prepares a dataset. It is the seam tests use to count
// or fake workbook reads.
type LoaderFunc func(path string, cols Columns) (*Dataset, error)

// Cache holds the single read-only Dataset for one workbook path. The first
// Get loads it; later calls return the same value until Reload. Concurrent
// first callers share one read.
type Cache struct {
	path string
	cols Columns
	load LoaderFunc

	group singleflight.Group

	mu sync.RWMutex
	ds *Dataset
	// started counts loads begun; stored is the generation of ds. A load
	// that finishes behind a newer one is discarded.
	started, stored uint64
}

// NewCache returns a Cache for path that loads with Load and then Normalize.
func NewCache(path string, cols Columns) *Cache {
	return NewCacheWithLoader(path, cols, func(p string, c Columns) (*Dataset, error) {
		ds, err := Load(p, c)
		if err != nil {
			return nil, err
		}
		return Normalize(ds), nil
	})
}

// NewCacheWithLoader returns a Cache that uses fn instead of the workbook
// loader.
func NewCacheWithLoader(path string, cols Columns, fn LoaderFunc) *Cache {
	return &Cache{path: path, cols: cols, load: fn}
}

// Path returns the workbook path this cache serves.
func (c *Cache) Path() string { return c.path }

// Get returns the cached dataset, loading it on first use.
func (c *Cache) Get(ctx context.Context) (*Dataset, error) {
	c.mu.RLock()
	ds := c.ds
	c.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}
	return c.fill(ctx)
}

// Reload discards the cached dataset and reads the workbook again. On
// failure the previous dataset stays in place.
func (c *Cache) Reload(ctx context.Context) (*Dataset, error) {
	c.group.Forget(c.path)
	return c.fill(ctx)
}

// Loaded reports whether a dataset is currently cached.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ds != nil
}

func (c *Cache) fill(ctx context.Context) (*Dataset, error) {
	ch := c.group.DoChan(c.path, func() (any, error) {
		c.mu.Lock()
		c.started++
		gen := c.started
		c.mu.Unlock()

		ds, err := c.load(c.path, c.cols)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen > c.stored {
			c.ds, c.stored = ds, gen
		}
		return c.ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}
