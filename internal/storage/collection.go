package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Collection is one JSON array of records stored under a single key. Every
// Save rewrites the whole array.
type Collection[T any] struct {
	kv  KV
	key string

	// serializes Mutate so two in-flight writers cannot clobber each other
	mu sync.Mutex
}

func NewCollection[T any](kv KV, key string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key}
}

func (c *Collection[T]) Key() string { return c.key }

// Load returns the stored records. A missing key is an empty collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// Mutate loads the collection, hands it to fn and saves what fn returns.
// When fn returns save=false the collection is left untouched.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) (out []T, save bool, err error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	out, save, err := fn(items)
	if err != nil || !save {
		return err
	}
	return c.Save(ctx, out)
}
