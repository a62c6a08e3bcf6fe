// Package store holds the process-wide domain state containers. Each store
// is a single-writer, many-reader container for one bounded context: writes
// serialize under the store's lock, subscribers observe every write in write
// order on the writer's goroutine, and reads hand out snapshot copies so no
// caller can alias the canonical state. Stores never perform network I/O.
package store

import (
	"sync"

	"go.uber.org/zap"

	"ideaboard-core/pkg/observability"
)

// container is the shared observable machinery behind every store.
type container[T any] struct {
	mu      sync.Mutex
	name    string
	state   T
	clone   func(T) T
	subs    map[int]func(T)
	nextSub int
	logger  *zap.Logger
	metrics *observability.Collector
}

func newContainer[T any](name string, initial T, clone func(T) T, logger *zap.Logger, metrics *observability.Collector) *container[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &container[T]{
		name:    name,
		state:   initial,
		clone:   clone,
		subs:    make(map[int]func(T)),
		logger:  logger,
		metrics: metrics,
	}
}

// Snapshot returns a copy of the current state.
func (c *container[T]) Snapshot() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clone(c.state)
}

// Subscribe registers fn to receive a snapshot after every write, in write
// order, on the writer's goroutine. The returned function cancels the
// subscription. Callbacks must not call back into the store.
func (c *container[T]) Subscribe(fn func(T)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// update applies one mutation and notifies subscribers while still holding
// the lock, which is what makes the store single-writer: no second mutation
// can interleave between a write and its notifications.
func (c *container[T]) update(op string, fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(&c.state)
	c.metrics.RecordStoreMutation(c.name, op)
	c.logger.Debug("Store mutated", zap.String("store", c.name), zap.String("op", op))

	for _, sub := range c.subs {
		sub(c.clone(c.state))
	}
}

// read runs fn against the live state under the lock and returns its result
// through out-parameters captured by the closure. Used for compound reads
// that must be consistent with concurrent writes.
func (c *container[T]) read(fn func(T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state)
}
