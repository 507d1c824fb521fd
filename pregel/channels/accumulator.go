package channels

import (
	"fmt"
	"sync"

	"github.com/agzarifis/pregel-go/pregel"
)

// Combine folds a new write into the accumulated value. It must be
// associative so that accumulation order across producers (which is
// unspecified, see SPEC_FULL.md §9) does not change the result.
type Combine[T any] func(acc, next T) T

// Accumulator implements monoidal-fold reduction: the current value is the
// fold of every write ever received, across all steps (unlike
// BinaryOperator, which folds only the current step's batch).
type Accumulator[T any] struct {
	mu      sync.Mutex
	value   T
	present bool
	combine Combine[T]
}

// NewAccumulator constructs an empty Accumulator using combine to fold
// writes. The first write ever received becomes the value as is; each later
// write is folded in with combine.
func NewAccumulator[T any](combine Combine[T]) *Accumulator[T] {
	return &Accumulator[T]{combine: combine}
}

// Update folds each write (in order) into the running total.
func (c *Accumulator[T]) Update(writes []T) error {
	if len(writes) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range writes {
		if !c.present {
			c.value = w
			c.present = true
			continue
		}
		c.value = c.combine(c.value, w)
	}
	return nil
}

// Get returns the accumulated value, or ErrEmptyChannel if never written.
func (c *Accumulator[T]) Get() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.present {
		var zero T
		return zero, pregel.ErrEmptyChannel
	}
	return c.value, nil
}

// Empty reports whether the channel has ever been updated.
func (c *Accumulator[T]) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.present
}

// UpdateAny implements pregel.AnyChannel.
func (c *Accumulator[T]) UpdateAny(writes []interface{}) error {
	typed := make([]T, len(writes))
	for i, w := range writes {
		v, ok := w.(T)
		if !ok {
			return fmt.Errorf("channels: Accumulator: write %d has wrong type %T", i, w)
		}
		typed[i] = v
	}
	return c.Update(typed)
}

// GetAny implements pregel.AnyChannel.
func (c *Accumulator[T]) GetAny() (interface{}, error) {
	return c.Get()
}

// CheckpointValue implements pregel.Checkpointable.
func (c *Accumulator[T]) CheckpointValue() (interface{}, error) {
	return c.Get()
}

// RestoreValue implements pregel.Checkpointable.
func (c *Accumulator[T]) RestoreValue(value interface{}) error {
	v, err := coerce[T](value)
	if err != nil {
		return fmt.Errorf("channels: Accumulator: restore value has wrong type %T: %w", value, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.present = true
	return nil
}

// SumInt is a Combine function that adds integers, for use with
// Accumulator[int] — e.g. the fan-out batch scenario in SPEC_FULL.md §8.
func SumInt(acc, next int) int { return acc + next }

// Appender is a Combine function that appends to a slice, for use with
// Accumulator[[]T].
func Appender[T any](acc, next []T) []T { return append(acc, next...) }

// SetUnion is a Combine function that unions two sets represented as
// map[T]struct{}.
func SetUnion[T comparable](acc, next map[T]struct{}) map[T]struct{} {
	if acc == nil {
		acc = make(map[T]struct{}, len(next))
	}
	for k := range next {
		acc[k] = struct{}{}
	}
	return acc
}

var (
	_ pregel.Channel[int, int] = (*Accumulator[int])(nil)
	_ pregel.AnyChannel        = (*Accumulator[int])(nil)
	_ pregel.Checkpointable    = (*Accumulator[int])(nil)
)
