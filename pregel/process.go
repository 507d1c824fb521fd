package pregel

import "context"

// RunContext is injected into every process invocation. It carries the
// current step number and the two bindings the spec names: Send (append to
// the step's pending writes) and Read (read any channel by name, returning
// (nil, false) on empty rather than failing — EmptyChannel is suppressed at
// this boundary per SPEC_FULL.md §7).
type RunContext struct {
	// Step is the current step number (0-based).
	Step int

	// Send appends a write to the current step's pending-writes buffer. Safe
	// for concurrent use by the process's own goroutines, if any.
	Send func(channel string, value interface{})

	// Read returns the current value of any channel by name. The second
	// return value is false if the channel has never been written
	// (EmptyChannel suppressed to a boolean, matching the Python original's
	// `read` closure that catches EmptyChannelError and returns None).
	Read func(channel string) (interface{}, bool)

	// CostTracker is the Engine's attached cost tracker, or nil if
	// WithCostTracker wasn't used. Model-backed processes (pregel/model)
	// record LLM token usage against it when present.
	CostTracker *CostTracker
}

// Subscription is the sum type backing an Invoke process's channel
// subscription, modeling the spec's singleton-none local key as a variant
// rather than a nil map entry (SPEC_FULL.md §3, redesign note in spec.md §9).
//
// Exactly one of the two forms is populated:
//   - Raw: subscribe to exactly one channel, receive its bare value.
//   - Record: subscribe to one or more channels, receive a
//     map[string]interface{} keyed by local key.
type Subscription struct {
	// Raw is the channel name when this is a single-keyless subscription
	// (the `{∅: name}` form). Empty string if this is a Record subscription.
	Raw string

	// Record maps local key to channel name. Nil if this is a Raw
	// subscription. All keys must be non-empty when this form is used.
	Record map[string]string
}

// IsRaw reports whether this is the single-keyless subscription form.
func (s Subscription) IsRaw() bool {
	return s.Raw != ""
}

// Names returns every channel name this subscription reads from, in an
// unspecified order.
func (s Subscription) Names() []string {
	if s.IsRaw() {
		return []string{s.Raw}
	}
	names := make([]string, 0, len(s.Record))
	for _, n := range s.Record {
		names = append(names, n)
	}
	return names
}

// validate checks the invariant from spec.md §3: either the mapping is
// exactly {∅: name} or all keys are non-∅ (non-empty).
func (s Subscription) validate() error {
	if s.IsRaw() {
		if len(s.Record) != 0 {
			return newTopologyError("subscription mixes the keyless form with keyed entries")
		}
		return nil
	}
	if len(s.Record) == 0 {
		return newTopologyError("subscription has no channels")
	}
	for k, v := range s.Record {
		if k == "" {
			return newTopologyError("subscription mixes the keyless form with keyed entries")
		}
		if v == "" {
			return newTopologyError("subscription has an empty channel name for key %q", k)
		}
	}
	return nil
}

// Process is the interface the engine schedules against. It is implemented
// by the two closed-set variants InvokeProcess and BatchProcess: the
// Planner dispatches on process kind via a type switch (spec.md §9's
// "tagged-variant enumeration" redesign), not reflection.
type Process interface {
	// processKind returns the variant tag ("invoke" or "batch"). Being
	// unexported, it keeps the set of implementations closed to this
	// package.
	processKind() string
}

// ProcessFunc is the user computation a process runs once it becomes
// eligible. It receives ctx for cancellation, the RunContext bindings, and
// the input value computed by the Planner (either a raw channel value, a
// map[string]interface{} for a Record subscription, or a sequence for a
// Batch process). Implementations should be side-effect-aware of
// cancellation: ctx.Done() fires on first-failure or step-timeout.
type ProcessFunc func(ctx context.Context, rc RunContext, input interface{}) error

// InvokeProcess subscribes to a named set of channels and runs once per step
// when any subscribed channel was updated, receiving a key→value mapping (or
// the raw value for a single-keyless subscription).
type InvokeProcess struct {
	Name         string
	Subscription Subscription
	Run          ProcessFunc

	// Writes declares the channel names this process may write to, for
	// construction-time output-reachability validation only (SPEC_FULL.md
	// §6). It is advisory: Run may call RunContext.Send with any channel
	// name at runtime regardless of what Writes lists, but Engine
	// construction checks every declared output name against the union of
	// every process's Writes, since Run itself is an opaque closure the
	// engine cannot introspect. Populate it with SendTo(...).Names() when
	// using the Sink sugar, or list the names directly.
	Writes []string
}

func (InvokeProcess) processKind() string { return "invoke" }

// BatchProcess subscribes to a single channel whose current value is a
// sequence, and runs once per step with the full sequence. If Key is
// non-empty, each element v of the sequence is wrapped as
// map[string]interface{}{Key: v} before being passed.
type BatchProcess struct {
	Name    string
	Channel string
	Key     string
	Run     ProcessFunc

	// Writes declares the channel names this process may write to; see
	// InvokeProcess.Writes.
	Writes []string
}

func (BatchProcess) processKind() string { return "batch" }

func (p InvokeProcess) validate() error {
	return p.Subscription.validate()
}

func (p BatchProcess) validate() error {
	if p.Channel == "" {
		return newTopologyError("batch process %q has no channel", p.Name)
	}
	return nil
}
