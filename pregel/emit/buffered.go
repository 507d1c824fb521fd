package emit

import (
	"context"
	"sync"
)

// Buffered wraps another Emitter and batches events, forwarding them to the
// underlying Emitter via EmitBatch-style draining on Flush or once the
// buffer reaches Capacity. Useful for backends where per-event emission is
// expensive (network calls, file syncs), mirroring the teacher's
// graph/emit.BufferedEmitter.
type Buffered struct {
	mu       sync.Mutex
	next     Emitter
	capacity int
	buf      []Event
}

// NewBuffered wraps next, flushing automatically once capacity events have
// accumulated. A non-positive capacity disables automatic flushing (only
// explicit Flush calls drain the buffer).
func NewBuffered(next Emitter, capacity int) *Buffered {
	return &Buffered{next: next, capacity: capacity}
}

// Emit buffers event, flushing automatically if capacity is reached.
func (b *Buffered) Emit(event Event) {
	b.mu.Lock()
	b.buf = append(b.buf, event)
	shouldFlush := b.capacity > 0 && len(b.buf) >= b.capacity
	b.mu.Unlock()

	if shouldFlush {
		_ = b.Flush(context.Background())
	}
}

// Flush forwards every buffered event to the underlying Emitter, in order,
// then clears the buffer.
func (b *Buffered) Flush(ctx context.Context) error {
	b.mu.Lock()
	pending := b.buf
	b.buf = nil
	b.mu.Unlock()

	for _, e := range pending {
		b.next.Emit(e)
	}
	return b.next.Flush(ctx)
}

// Len returns the number of events currently buffered.
func (b *Buffered) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}

var _ Emitter = (*Buffered)(nil)
