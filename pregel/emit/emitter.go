package emit

import "context"

// Emitter receives observability events from engine execution.
//
// Implementations should be non-blocking and thread-safe: Emit may be called
// concurrently by multiple running processes within the same step.
type Emitter interface {
	// Emit sends a single event to the configured backend. Must not panic;
	// backends that can fail should log internally rather than propagate.
	Emit(event Event)

	// Flush blocks until any buffered events have been delivered, or ctx is
	// done. Implementations with no buffering may return nil immediately.
	Flush(ctx context.Context) error
}
