package channels

import (
	"fmt"
	"sync"

	"github.com/agzarifis/pregel-go/pregel"
)

// Ephemeral holds the last write only until the *next* Update call: once a
// new batch arrives the previous value is gone even if nothing ever read it.
// Used for pass-through signaling where a process only cares whether a
// channel was touched this step, not about replaying stale history.
// Functionally it behaves like LastValue for a single step, but callers
// should not rely on a value surviving past the step that follows its write.
type Ephemeral[T any] struct {
	mu      sync.RWMutex
	value   T
	present bool
}

// NewEphemeral constructs an empty Ephemeral channel for type T.
func NewEphemeral[T any]() *Ephemeral[T] {
	return &Ephemeral[T]{}
}

// Update replaces the current value with the last element of writes.
func (c *Ephemeral[T]) Update(writes []T) error {
	if len(writes) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = writes[len(writes)-1]
	c.present = true
	return nil
}

// Get returns the current value, or ErrEmptyChannel if never written.
func (c *Ephemeral[T]) Get() (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.present {
		var zero T
		return zero, pregel.ErrEmptyChannel
	}
	return c.value, nil
}

// Empty reports whether the channel has ever been updated.
func (c *Ephemeral[T]) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.present
}

// UpdateAny implements pregel.AnyChannel.
func (c *Ephemeral[T]) UpdateAny(writes []interface{}) error {
	typed := make([]T, len(writes))
	for i, w := range writes {
		v, ok := w.(T)
		if !ok {
			return fmt.Errorf("channels: Ephemeral: write %d has wrong type %T", i, w)
		}
		typed[i] = v
	}
	return c.Update(typed)
}

// GetAny implements pregel.AnyChannel.
func (c *Ephemeral[T]) GetAny() (interface{}, error) {
	return c.Get()
}

var (
	_ pregel.Channel[int, int] = (*Ephemeral[int])(nil)
	_ pregel.AnyChannel        = (*Ephemeral[int])(nil)
)
