// Package store provides durable key -> ordered collection persistence with
// load-on-open and synchronous save-on-mutation.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keepsake-app/keepsake/internal/log"
)

// Collection keys.
const (
	KeyGalleryImages   = "gallery_images"
	KeyDateSuggestions = "date_suggestions"
)

// Backend is a durable key-value slot store.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put replaces the value for key. It returns only once the write is durable.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Collection is an ordered list of T persisted under a single key.
// It is not safe for concurrent use; callers mutate it from one goroutine.
type Collection[T any] struct {
	backend Backend
	key     string
	items   []T
	logger  *log.Logger
}

// Open loads the collection stored under key. A missing key yields an empty
// collection. An unreadable or corrupt payload also yields an empty
// collection and is logged as store_corrupt; Open never fails.
func Open[T any](ctx context.Context, backend Backend, key string, logger *log.Logger) *Collection[T] {
	c := &Collection[T]{backend: backend, key: key, logger: logger}

	data, ok, err := backend.Get(ctx, key)
	if err != nil {
		c.corrupt(fmt.Errorf("reading %s: %w", key, err))
		return c
	}
	if !ok || len(data) == 0 {
		return c
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.corrupt(fmt.Errorf("parsing %s: %w", key, err))
		return c
	}
	c.items = items
	return c
}

func (c *Collection[T]) corrupt(err error) {
	_ = c.logger.Append(log.LogEvent{
		Event: log.EventStoreCorrupt,
		Key:   c.key,
		Error: err.Error(),
	})
}

// Key returns the storage key.
func (c *Collection[T]) Key() string {
	return c.key
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the items in order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Mutate applies fn to a copy of the items, persists the result, and only
// then makes it visible. If persisting fails the collection is unchanged.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) []T) error {
	next := fn(c.Items())
	if err := c.write(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// Save rewrites the current items. Saving an unchanged collection is a no-op
// on its persisted contents.
func (c *Collection[T]) Save(ctx context.Context) error {
	return c.write(ctx, c.items)
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", c.key, err)
	}
	if err := c.backend.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("saving %s: %w", c.key, err)
	}
	return nil
}
