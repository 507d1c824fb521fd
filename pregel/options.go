package pregel

import (
	"time"

	"github.com/agzarifis/pregel-go/pregel/emit"
)

// Option configures an Engine at construction time, following the
// functional-options pattern:
//
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithRecursionLimit(50),
//	    pregel.WithStepTimeout(5*time.Second),
//	)
//
// Options are applied in order, so a later option overrides an earlier one
// for the same field. Every option is optional; NewEngine without any
// produces the defaults documented on each With* function below.
type Option func(*engineConfig)

// engineConfig collects options before they're baked into an Engine. This
// indirection keeps construction-time defaulting and validation in one
// place rather than scattered across NewEngine's parameter list.
type engineConfig struct {
	recursionLimit       int
	stepTimeout          time.Duration
	maxConcurrent        int
	strictRecursionLimit bool
	strictUnroutedWrites bool
	emitter              emit.Emitter
	metrics              *Metrics
	checkpointer         Checkpointer
	costTracker          *CostTracker
}

func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		recursionLimit: 25,
		maxConcurrent:  0, // 0 = unbounded fan-out, one goroutine per ready task
		emitter:        emit.NullEmitter{},
	}
}

// WithRecursionLimit sets the maximum number of super-steps a single run may
// execute before terminating.
//
// Default: 25.
//
// A process topology with a cycle (a process that writes back to a channel
// it subscribes to, directly or transitively) can otherwise run forever;
// the recursion limit is the backstop against that. Raise it for topologies
// with a genuinely long convergence loop (e.g. an iterative refinement
// process), and pair it with WithStrictRecursionLimit(true) when exhausting
// the limit without halting should be treated as a failure rather than a
// quiet stop.
//
// Example:
//
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithRecursionLimit(100),
//	)
func WithRecursionLimit(n int) Option {
	return func(c *engineConfig) { c.recursionLimit = n }
}

// WithStepTimeout bounds how long a single super-step's fan-out may run
// before the engine cancels every inflight task for that step and returns a
// *TimeoutError.
//
// Default: 0 (disabled — a step may run as long as its slowest task).
//
// Set this whenever a process can call out to something that might hang
// (a model API, an HTTP tool, a slow external store) and a stuck call
// should not stall the whole run indefinitely.
//
// Example:
//
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithStepTimeout(10*time.Second),
//	)
func WithStepTimeout(d time.Duration) Option {
	return func(c *engineConfig) { c.stepTimeout = d }
}

// WithMaxConcurrent bounds how many tasks run concurrently within a single
// super-step.
//
// Default: 0 (unbounded — every ready task for the step is scheduled at
// once, one goroutine each).
//
// Tuning guidance:
//   - CPU-bound processes: size it to the number of available cores.
//   - I/O-bound processes (model calls, HTTP tools): size it to whatever
//     concurrency limit the external service tolerates.
//   - Large fan-out batches (many writes landing on one Topic channel in a
//     single step): bound this to cap peak goroutine count.
//
// Example:
//
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithMaxConcurrent(8),
//	)
func WithMaxConcurrent(n int) Option {
	return func(c *engineConfig) { c.maxConcurrent = n }
}

// WithStrictRecursionLimit controls what happens when a run exhausts its
// recursion limit without halting on its own.
//
// Default: false — the run terminates normally and silently, returning
// whatever output it last yielded.
//
// Set to true when a topology that never halts within its recursion limit
// indicates a bug (an unintended cycle, a missing exit condition) rather
// than expected long-running behavior; the run then returns a
// *RecursionExhaustedError instead of quietly stopping.
//
// Example:
//
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithRecursionLimit(50),
//	    pregel.WithStrictRecursionLimit(true),
//	)
func WithStrictRecursionLimit(strict bool) Option {
	return func(c *engineConfig) { c.strictRecursionLimit = strict }
}

// WithStrictUnroutedWrites controls what happens when a process writes to a
// channel name that isn't declared in the topology.
//
// Default: false — a diagnostic event is emitted, the unrouted-writes
// metric is incremented, and the write is silently dropped.
//
// Set to true during development of a new topology, or anywhere a silently
// dropped write would hide a real wiring bug; the step then fails with an
// *UnroutedWriteError instead of continuing past it.
//
// Example:
//
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithStrictUnroutedWrites(true),
//	)
func WithStrictUnroutedWrites(strict bool) Option {
	return func(c *engineConfig) { c.strictUnroutedWrites = strict }
}

// WithEmitter attaches an observability Emitter that receives step/task
// lifecycle events (registry setup, step start/end, task start/end,
// unrouted writes, timeouts, cancellations).
//
// Default: emit.NullEmitter{} (events are discarded).
//
// Use emit.NewLogEmitter for human-readable or JSON logging during
// development, emit.NewBuffered to batch events in front of another
// Emitter, or emit.NewOtelEmitter to turn step events into OpenTelemetry
// spans.
//
// Example:
//
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithEmitter(emit.NewLogEmitter(os.Stdout, false)),
//	)
func WithEmitter(e emit.Emitter) Option {
	return func(c *engineConfig) {
		if e != nil {
			c.emitter = e
		}
	}
}

// WithMetrics attaches Prometheus metrics collection for active tasks,
// pending-writes size, step latency, unrouted-write count, and
// cancellation count.
//
// Default: nil (metrics collection disabled).
//
// Example:
//
//	m := pregel.NewMetrics(prometheus.DefaultRegisterer)
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithMetrics(m),
//	)
func WithMetrics(m *Metrics) Option {
	return func(c *engineConfig) { c.metrics = m }
}

// WithCheckpointer attaches a durable-persistence backend. At each step
// boundary the engine snapshots every checkpointable channel's current
// value and saves it keyed by run ID; a later run sharing that run ID (via
// WithRunID on its context) resumes from the last saved snapshot instead of
// starting cold.
//
// Default: nil (checkpointing disabled entirely — the core step loop
// behaves identically either way).
//
// Use store.NewMemoryStore for tests, store.NewSQLiteStore or
// store.NewMySQLStore for durable persistence across process restarts.
//
// Example:
//
//	cp, err := store.NewSQLiteStore("run-state.db")
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithCheckpointer(cp),
//	)
func WithCheckpointer(cp Checkpointer) Option {
	return func(c *engineConfig) { c.checkpointer = cp }
}

// WithCostTracker attaches a CostTracker that model-backed processes (see
// pregel/model's AsInvoke) record LLM token usage and cost against, keyed
// by model name, process name, and step.
//
// Default: nil — model calls still work without a tracker attached, they
// simply record no cost data.
//
// Example:
//
//	tracker := pregel.NewCostTracker(runID, "USD")
//	eng, err := pregel.NewEngine(channels, processes, input, output,
//	    pregel.WithCostTracker(tracker),
//	)
func WithCostTracker(t *CostTracker) Option {
	return func(c *engineConfig) { c.costTracker = t }
}
