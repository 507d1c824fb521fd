package pregel

// Channel is a typed, stateful cell with a domain-specific reduction rule.
//
// A channel receives a batch of writes via Update and produces a current
// value via Get. It starts empty: Get on an empty channel returns
// ErrEmptyChannel. Implementers decide the reduction discipline — last-write
// wins, accumulation, topic/inbox semantics, associative folding — the core
// engine only relies on the three-method contract below and two guarantees:
//
//  1. Update is called with all writes for a step, in insertion order.
//  2. After a successful Update, Get does not fail until the channel's
//     owning Registry is torn down.
//
// Update is invoked at most once per channel per step boundary, with every
// write targeted at that channel during the step. Within a single step a
// channel's observable value does not change: concurrently-running
// processes always see the same snapshot.
//
// Concrete channels live in the pregel/channels subpackage (LastValue,
// Topic, Accumulator, BinaryOperator, Ephemeral).
type Channel[U, V any] interface {
	// Update reduces writes into the channel's current state. writes is in
	// insertion order for a single producer; cross-producer order across a
	// step is unspecified (see SPEC_FULL.md §9).
	Update(writes []U) error

	// Get returns the current value. It returns ErrEmptyChannel if the
	// channel has never been updated since the registry created it.
	Get() (V, error)

	// Empty reports whether the channel has ever been updated. It must not
	// have side effects and must agree with Get's ErrEmptyChannel behavior.
	Empty() bool
}

// AnyChannel erases a Channel[U, V]'s type parameters so the engine can hold
// a heterogeneous registry of channels by name. Concrete channel types
// satisfy it by updating/reading through interface{} and doing their own
// type assertion; the pregel/channels constructors return values that
// already implement it.
type AnyChannel interface {
	// UpdateAny reduces a batch of untyped writes into the channel.
	UpdateAny(writes []interface{}) error

	// GetAny returns the current value as interface{}, or ErrEmptyChannel.
	GetAny() (interface{}, error)

	// Empty reports whether the channel has ever been updated.
	Empty() bool
}

// Checkpointable is implemented by channels that can snapshot and restore
// their state for the checkpoint() / from_checkpoint() extension point named
// in SPEC_FULL.md §3. It is optional: channels that don't implement it are
// simply skipped when the engine takes a snapshot (see checkpointSnapshot in
// checkpoint.go).
type Checkpointable interface {
	// CheckpointValue returns a JSON-serializable snapshot of current state,
	// or (nil, ErrEmptyChannel) if the channel was never written.
	CheckpointValue() (interface{}, error)

	// RestoreValue restores state from a previously returned snapshot.
	RestoreValue(value interface{}) error
}
