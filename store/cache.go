package store

import (
	"context"
	"sync"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// CategoryCache loads the category table once and serves it for the rest
// of the run. A failed load is not cached.
type CategoryCache struct {
	source interface {
		Categories(ctx context.Context) ([]core.Category, error)
	}

	mu         sync.Mutex
	categories []core.Category
	loaded     bool
}

// NewCategoryCache wraps a store.
func NewCategoryCache(s Store) *CategoryCache {
	return &CategoryCache{source: s}
}

// Categories returns the cached table, loading it on first use.
func (c *CategoryCache) Categories(ctx context.Context) ([]core.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.categories, nil
	}
	cats, err := c.source.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.categories = cats
	c.loaded = true
	return cats, nil
}

// Names returns the category names in table order.
func (c *CategoryCache) Names(ctx context.Context) ([]string, error) {
	cats, err := c.Categories(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = cat.Name
	}
	return names, nil
}
