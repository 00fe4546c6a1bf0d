// Package store keeps client-side caches of the API's resources. Every
// mutation waits for the server to confirm it and then reloads the full list,
// so a cache never holds a record the server has not acknowledged.
package store

import (
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/pkg/client"
)

// Snapshot is a point-in-time copy of a resource cache.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Error   string
	// Message is the server's note for an empty list.
	Message string
}

// cache is a list guarded by a mutex. The lock is never held across a
// network call.
type cache[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	err     string
	message string

	id  func(T) string
	log zerolog.Logger
}

func newCache[T any](id func(T) string, log zerolog.Logger) *cache[T] {
	return &cache[T]{id: id, log: log}
}

func (c *cache[T]) snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{
		Items:   slices.Clone(c.items),
		Loading: c.loading,
		Error:   c.err,
		Message: c.message,
	}
}

func (c *cache[T]) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
}

// fail records err and leaves the list as it was.
func (c *cache[T]) fail(err error, fallback string) error {
	msg := errorMessage(err, fallback)
	c.mu.Lock()
	c.loading = false
	c.err = msg
	c.mu.Unlock()
	c.log.Error().Err(err).Msg(msg)
	return err
}

func (c *cache[T]) reset(items []T, message string) {
	c.mu.Lock()
	c.items = slices.Clone(items)
	c.message = message
	c.loading = false
	c.mu.Unlock()
}

func (c *cache[T]) push(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.loading = false
	c.mu.Unlock()
}

// replace swaps the item with the same id, or appends it when the cache does
// not hold it.
func (c *cache[T]) replace(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	id := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

func (c *cache[T]) remove(id string) {
	c.mu.Lock()
	c.items = slices.DeleteFunc(c.items, func(item T) bool { return c.id(item) == id })
	c.loading = false
	c.mu.Unlock()
}

// errorMessage prefers the server's message over the fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
