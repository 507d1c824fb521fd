// Package emit provides event emission and observability for pregel engine
// execution, adapted from the teacher's graph/emit package to the step/
// channel/process vocabulary of the channel-based engine.
package emit

// Event represents an observability event emitted during engine execution:
// registry setup, step start/end, task start/end, unrouted writes, timeouts,
// first-failure cancellation, halt, and recursion-limit exhaustion.
type Event struct {
	// RunID identifies the run that emitted this event. Empty if the caller
	// did not supply one (runs are not required to be named).
	RunID string

	// Step is the step number this event pertains to. Zero for the run-level
	// "registry_setup" event; -1 for unrouted writes found in the seed input,
	// before step 0.
	Step int

	// Process identifies which process emitted this event. Empty string for
	// step- or run-level events not attributable to a single process.
	Process string

	// Msg is a short machine-greppable event name, e.g. "step_start",
	// "task_end", "unrouted_write", "timeout", "cancelled", "halt".
	Msg string

	// Meta carries event-specific structured data, e.g. {"channel": "ghost"}
	// for an unrouted_write event or {"duration_ms": 12} for a task_end.
	Meta map[string]interface{}
}
