// Package cache holds the in-process dataset memo table and the optional
// Redis client.
package cache

import (
	"context"
	"fmt"
	"sync"

	"pulseboard/internal/models"
	"pulseboard/internal/observability"

	"golang.org/x/sync/singleflight"
)

// DatasetKey identifies one generated dataset.
type DatasetKey struct {
	Count int
	Seed  int64
}

func (k DatasetKey) String() string {
	return fmt.Sprintf("%d:%d", k.Count, k.Seed)
}

// GenerateFunc produces the dataset for a key.
type GenerateFunc func(ctx context.Context, count int, seed int64) ([]models.Post, error)

// DatasetCache memoizes generated datasets for the lifetime of the process.
// Entries are never evicted. Concurrent misses on the same key share one
// generation.
type DatasetCache struct {
	generate GenerateFunc

	mu      sync.RWMutex
	entries map[DatasetKey][]models.Post
	group   singleflight.Group
}

// NewDatasetCache creates a cache backed by generate.
func NewDatasetCache(generate GenerateFunc) *DatasetCache {
	return &DatasetCache{
		generate: generate,
		entries:  make(map[DatasetKey][]models.Post),
	}
}

// Get returns the dataset for (count, seed), generating it on first use.
// The returned slice is a copy; callers may reorder it freely.
func (c *DatasetCache) Get(ctx context.Context, count int, seed int64) ([]models.Post, error) {
	key := DatasetKey{Count: count, Seed: seed}

	c.mu.RLock()
	posts, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		observability.DatasetCacheRequests.WithLabelValues("hit").Inc()
		return clonePosts(posts), nil
	}

	observability.DatasetCacheRequests.WithLabelValues("miss").Inc()
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		generated, err := c.generate(ctx, count, seed)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = generated
		c.mu.Unlock()
		return generated, nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate dataset %s: %w", key, err)
	}
	return clonePosts(v.([]models.Post)), nil
}

// Len reports the number of memoized datasets.
func (c *DatasetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys lists the memoized dataset keys.
func (c *DatasetCache) Keys() []DatasetKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]DatasetKey, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	return out
}
