// Package channels provides concrete Channel implementations for the pregel
// engine: LastValue, Topic, Accumulator, BinaryOperator, and Ephemeral, each
// exercising a distinct reduction discipline named in SPEC_FULL.md §4.1.
package channels

import (
	"fmt"
	"sync"

	"github.com/agzarifis/pregel-go/pregel"
)

// LastValue implements last-write-wins reduction: the current value after
// Update is the last element of the writes batch. This is the channel used
// by the chat-room echo and two-step pipeline scenarios in SPEC_FULL.md §8.
type LastValue[T any] struct {
	mu      sync.RWMutex
	value   T
	present bool
}

// NewLastValue constructs an empty LastValue channel for type T.
func NewLastValue[T any]() *LastValue[T] {
	return &LastValue[T]{}
}

// Update replaces the current value with the last element of writes. An
// empty writes batch is a no-op (Update is never called with an empty batch
// by the planner, but implementations must not panic if it is).
func (c *LastValue[T]) Update(writes []T) error {
	if len(writes) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = writes[len(writes)-1]
	c.present = true
	return nil
}

// Get returns the current value, or pregel.ErrEmptyChannel if never written.
func (c *LastValue[T]) Get() (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.present {
		var zero T
		return zero, pregel.ErrEmptyChannel
	}
	return c.value, nil
}

// Empty reports whether the channel has ever been updated.
func (c *LastValue[T]) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.present
}

// UpdateAny implements pregel.AnyChannel by type-asserting each write to T.
func (c *LastValue[T]) UpdateAny(writes []interface{}) error {
	typed := make([]T, len(writes))
	for i, w := range writes {
		v, ok := w.(T)
		if !ok {
			return fmt.Errorf("channels: LastValue: write %d has wrong type %T", i, w)
		}
		typed[i] = v
	}
	return c.Update(typed)
}

// GetAny implements pregel.AnyChannel.
func (c *LastValue[T]) GetAny() (interface{}, error) {
	return c.Get()
}

// CheckpointValue implements pregel.Checkpointable.
func (c *LastValue[T]) CheckpointValue() (interface{}, error) {
	return c.Get()
}

// RestoreValue implements pregel.Checkpointable.
func (c *LastValue[T]) RestoreValue(value interface{}) error {
	v, err := coerce[T](value)
	if err != nil {
		return fmt.Errorf("channels: LastValue: restore value has wrong type %T: %w", value, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.present = true
	return nil
}

var (
	_ pregel.Channel[int, int]    = (*LastValue[int])(nil)
	_ pregel.AnyChannel           = (*LastValue[int])(nil)
	_ pregel.Checkpointable       = (*LastValue[int])(nil)
)
