package emit

import "context"

// NullEmitter discards every event. It's the Engine's default so that
// observability is opt-in, matching the teacher's graph/emit.NullEmitter.
type NullEmitter struct{}

// Emit discards the event.
func (NullEmitter) Emit(Event) {}

// Flush is a no-op and always returns nil.
func (NullEmitter) Flush(context.Context) error { return nil }

var _ Emitter = NullEmitter{}
