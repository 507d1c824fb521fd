package channels

import (
	"fmt"
	"sync"

	"github.com/agzarifis/pregel-go/pregel"
)

// BinaryOperator implements associative-reduction: Update folds only the
// current step's writes (left to right) with Operator and the result
// *replaces* the current value, unlike Accumulator which folds across every
// step the channel has ever seen. Useful when a step's writes should be
// combined but history from prior steps should not compound.
type BinaryOperator[T any] struct {
	mu       sync.RWMutex
	value    T
	present  bool
	operator Combine[T]
}

// NewBinaryOperator constructs an empty BinaryOperator channel using op to
// reduce each step's write batch.
func NewBinaryOperator[T any](op Combine[T]) *BinaryOperator[T] {
	return &BinaryOperator[T]{operator: op}
}

// Update replaces the current value with the left-fold of writes under the
// configured operator.
func (c *BinaryOperator[T]) Update(writes []T) error {
	if len(writes) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	acc := writes[0]
	for _, w := range writes[1:] {
		acc = c.operator(acc, w)
	}
	c.value = acc
	c.present = true
	return nil
}

// Get returns the current value, or ErrEmptyChannel if never written.
func (c *BinaryOperator[T]) Get() (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.present {
		var zero T
		return zero, pregel.ErrEmptyChannel
	}
	return c.value, nil
}

// Empty reports whether the channel has ever been updated.
func (c *BinaryOperator[T]) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.present
}

// UpdateAny implements pregel.AnyChannel.
func (c *BinaryOperator[T]) UpdateAny(writes []interface{}) error {
	typed := make([]T, len(writes))
	for i, w := range writes {
		v, ok := w.(T)
		if !ok {
			return fmt.Errorf("channels: BinaryOperator: write %d has wrong type %T", i, w)
		}
		typed[i] = v
	}
	return c.Update(typed)
}

// GetAny implements pregel.AnyChannel.
func (c *BinaryOperator[T]) GetAny() (interface{}, error) {
	return c.Get()
}

var (
	_ pregel.Channel[int, int] = (*BinaryOperator[int])(nil)
	_ pregel.AnyChannel        = (*BinaryOperator[int])(nil)
)
