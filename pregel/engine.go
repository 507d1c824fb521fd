package pregel

import (
	"context"
	"fmt"

	"github.com/agzarifis/pregel-go/pregel/emit"
)

// Endpoint names an Engine's input or output, either a single channel (the
// spec's "single-source"/"single-sink mode", raw value in/out) or a set of
// channels ("record-source"/"record-sink mode", map[string]interface{}
// in/out).
type Endpoint struct {
	// Single is the channel name for single-channel mode. Empty if this is
	// a set-mode Endpoint.
	Single string

	// Set lists channel names for record mode. Nil if this is single-mode.
	Set []string
}

// IsSingle reports whether this is single-channel mode.
func (e Endpoint) IsSingle() bool { return e.Single != "" }

// Names returns every channel name this Endpoint refers to.
func (e Endpoint) Names() []string {
	if e.IsSingle() {
		return []string{e.Single}
	}
	out := make([]string, len(e.Set))
	copy(out, e.Set)
	return out
}

// ChannelFactory constructs a fresh, empty channel instance. Engine calls
// one factory per named channel at the start of every Invoke/Stream/
// Transform/ATransform call, so each run gets its own isolated registry
// (spec.md §3, "Channels live exactly as long as the registry").
type ChannelFactory func() AnyChannel

// StepOutput is one item of a Stream/Transform/ATransform sequence: either
// Output is set (a step produced a value on the output Endpoint) or Err is
// set (the run failed) — never both. The sequence ends, with no further
// items, on normal halt.
type StepOutput struct {
	Output interface{}
	Err    error
}

// Engine is the façade described in spec.md §4.5 / §6: a validated topology
// of channels and processes, exposing Invoke, Stream, Transform, and
// ATransform. Construct with NewEngine; an Engine is immutable and safe for
// concurrent use by multiple simultaneous runs, since every run gets its
// own freshly-instantiated Registry.
type Engine struct {
	factories map[string]ChannelFactory
	processes []Process
	input     Endpoint
	output    Endpoint
	cfg       *engineConfig
}

// NewEngine validates and constructs an Engine. Validation (spec.md §6):
// every name referenced by a process, by input, or by output must have a
// factory; at least one process must read from an input name; every output
// name must be declared as a Write by at least one process; every Invoke
// subscription must satisfy its singleton-none invariant.
func NewEngine(channels map[string]ChannelFactory, processes []Process, input, output Endpoint, opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateTopology(channels, processes, input, output); err != nil {
		return nil, err
	}

	return &Engine{
		factories: channels,
		processes: processes,
		input:     input,
		output:    output,
		cfg:       cfg,
	}, nil
}

func validateTopology(channels map[string]ChannelFactory, processes []Process, input, output Endpoint) error {
	for _, name := range input.Names() {
		if _, ok := channels[name]; !ok {
			return newTopologyError("input channel %q is not declared", name)
		}
	}
	for _, name := range output.Names() {
		if _, ok := channels[name]; !ok {
			return newTopologyError("output channel %q is not declared", name)
		}
	}

	writesTo := make(map[string]bool)
	readsInput := false
	inputNames := make(map[string]bool)
	for _, n := range input.Names() {
		inputNames[n] = true
	}

	for _, proc := range processes {
		switch p := proc.(type) {
		case InvokeProcess:
			if err := p.validate(); err != nil {
				return err
			}
			for _, name := range p.Subscription.Names() {
				if _, ok := channels[name]; !ok {
					return newTopologyError("process %q subscribes to unknown channel %q", p.Name, name)
				}
				if inputNames[name] {
					readsInput = true
				}
			}
			for _, name := range p.Writes {
				writesTo[name] = true
			}
		case BatchProcess:
			if err := p.validate(); err != nil {
				return err
			}
			if _, ok := channels[p.Channel]; !ok {
				return newTopologyError("process %q subscribes to unknown channel %q", p.Name, p.Channel)
			}
			if inputNames[p.Channel] {
				readsInput = true
			}
			for _, name := range p.Writes {
				writesTo[name] = true
			}
		default:
			return newTopologyError("unknown process kind %T", proc)
		}
	}

	if !readsInput {
		return ErrNoInputProcess
	}
	for _, name := range output.Names() {
		if !writesTo[name] {
			return fmt.Errorf("%w: %q", ErrOutputNotWritten, name)
		}
	}
	return nil
}

// newRegistry instantiates a fresh channel for every declared factory.
func (e *Engine) newRegistry() (*Registry, error) {
	channels := make(map[string]AnyChannel, len(e.factories))
	for name, factory := range e.factories {
		channels[name] = factory()
	}
	return NewRegistry(channels)
}

// Invoke runs the engine to halt and returns the last yielded output, or
// nil if the run produced no output before halting.
func (e *Engine) Invoke(ctx context.Context, input interface{}) (interface{}, error) {
	var latest interface{}
	for item := range e.Stream(ctx, input) {
		if item.Err != nil {
			return nil, item.Err
		}
		latest = item.Output
	}
	return latest, nil
}

// Stream runs the engine seeded with a single input value, producing a
// lazy, finite sequence of per-step outputs. Each call is independent and
// restartable: it instantiates its own Registry.
func (e *Engine) Stream(ctx context.Context, input interface{}) <-chan StepOutput {
	return e.Transform(ctx, []interface{}{input})
}

// Transform runs the engine seeded with a sequence of input chunks rather
// than a single value, matching the original's `_transform`: the entire
// inputs slice is consumed upfront to build the initial pending-writes
// batch, before the step loop begins (SPEC_FULL.md §4.5) — there is no
// later point at which more input is accepted mid-run.
func (e *Engine) Transform(ctx context.Context, inputs []interface{}) <-chan StepOutput {
	out := make(chan StepOutput)
	go e.run(ctx, inputs, out)
	return out
}

// ATransform is the cooperative-async counterpart to Transform. Go has no
// native coroutines, so this is the same goroutine-based implementation as
// Transform; context.Context is the suspension/cancellation primitive in
// both flavors (SPEC_FULL.md §5).
func (e *Engine) ATransform(ctx context.Context, inputs []interface{}) <-chan StepOutput {
	return e.Transform(ctx, inputs)
}

func (e *Engine) run(ctx context.Context, inputs []interface{}, out chan<- StepOutput) {
	defer close(out)

	runID := runIDFromContext(ctx)
	registry, err := e.newRegistry()
	if err != nil {
		out <- StepOutput{Err: err}
		return
	}
	defer registry.Teardown()

	if e.cfg.checkpointer != nil {
		if step, snapshot, ok, err := e.cfg.checkpointer.Load(ctx, runID); err == nil && ok {
			if err := restoreSnapshot(registry, snapshot); err != nil {
				out <- StepOutput{Err: err}
				return
			}
			_ = step // resumed step number is informational only; the loop below always starts counting from 0 for recursion-limit purposes
		}
	}

	sr := &stepRunner{
		runID:                runID,
		registry:             registry,
		recursionLimit:       e.cfg.recursionLimit,
		stepTimeout:          e.cfg.stepTimeout,
		maxConcurrent:        e.cfg.maxConcurrent,
		strictRecursionLimit: e.cfg.strictRecursionLimit,
		strictUnroutedWrites: e.cfg.strictUnroutedWrites,
		emitter:              e.cfg.emitter,
		metrics:              e.cfg.metrics,
		costTracker:          e.cfg.costTracker,
	}
	sr.emit(emit.Event{RunID: runID, Msg: "registry_setup"})

	seed := e.seedWrites(inputs)
	plan, err := applyWritesAndPrepareNextTasks(e.processes, registry, seed)
	if err != nil {
		out <- StepOutput{Err: err}
		return
	}
	if err := e.handleUnrouted(sr, -1, plan.unroutedChannels); err != nil {
		out <- StepOutput{Err: err}
		return
	}
	tasks := plan.tasks

	for step := 0; step < e.cfg.recursionLimit; step++ {
		if len(tasks) == 0 {
			return
		}

		outcome := sr.runStep(ctx, step, e.processes, tasks)
		if outcome.failErr != nil {
			out <- StepOutput{Err: outcome.failErr}
			return
		}

		if e.cfg.checkpointer != nil {
			if snapshot, err := checkpointSnapshot(registry); err == nil {
				_ = e.cfg.checkpointer.Save(ctx, runID, step, snapshot)
			}
		}

		if value, ok := e.outputFor(registry, outcome.updated); ok {
			select {
			case out <- StepOutput{Output: value}:
			case <-ctx.Done():
				return
			}
		}

		if outcome.halted {
			return
		}
		tasks = outcome.tasks
	}

	sr.emit(emit.Event{RunID: runID, Step: e.cfg.recursionLimit, Msg: "recursion_exhausted", Meta: map[string]interface{}{"limit": e.cfg.recursionLimit}})
	if e.cfg.strictRecursionLimit {
		out <- StepOutput{Err: &RecursionExhaustedError{Limit: e.cfg.recursionLimit}}
	}
}

// handleUnrouted applies the engine's unrouted-write policy to the initial
// seed plan, mirroring what runStep does for every subsequent step.
func (e *Engine) handleUnrouted(sr *stepRunner, step int, unrouted []string) error {
	if len(unrouted) == 0 {
		return nil
	}
	sr.metrics.incUnroutedWrites(len(unrouted))
	if e.cfg.strictUnroutedWrites {
		return &UnroutedWriteError{Step: step, Channel: unrouted[0]}
	}
	for _, ch := range unrouted {
		sr.emit(emit.Event{RunID: sr.runID, Step: step, Msg: "unrouted_write", Meta: map[string]interface{}{"channel": ch}})
	}
	return nil
}

// seedWrites converts the driver's input chunks into the initial pending
// writes, per spec.md §6: single-source mode writes each chunk directly to
// the input channel; record-source mode expects each chunk to be a
// map[string]interface{} and writes only the keys present in the declared
// input set.
func (e *Engine) seedWrites(inputs []interface{}) []write {
	var seed []write
	if e.input.IsSingle() {
		for _, chunk := range inputs {
			seed = append(seed, write{channel: e.input.Single, value: chunk})
		}
		return seed
	}

	wanted := make(map[string]bool, len(e.input.Set))
	for _, n := range e.input.Set {
		wanted[n] = true
	}
	for _, chunk := range inputs {
		m, ok := chunk.(map[string]interface{})
		if !ok {
			continue
		}
		for k, v := range m {
			if wanted[k] {
				seed = append(seed, write{channel: k, value: v})
			}
		}
	}
	return seed
}

// outputFor reads the output value(s) to yield for a step, gated by
// updated — the set of channel names that step's plan actually wrote to
// (spec.md §6's "any write to output channel in this step, yield current
// value"). A channel never written at all still can't be read (GetAny
// fails with ErrEmptyChannel), but the updated gate is what distinguishes
// "written this step" from "written at some earlier step", which matters
// because a single-sink Engine must not re-yield the same value every
// subsequent step once the output channel has been written once.
func (e *Engine) outputFor(registry *Registry, updated map[string]bool) (interface{}, bool) {
	if e.output.IsSingle() {
		if !updated[e.output.Single] {
			return nil, false
		}
		ch, ok := registry.Get(e.output.Single)
		if !ok {
			return nil, false
		}
		val, err := ch.GetAny()
		if err != nil {
			return nil, false
		}
		return val, true
	}

	result := make(map[string]interface{})
	any := false
	for _, name := range e.output.Set {
		if !updated[name] {
			continue
		}
		ch, ok := registry.Get(name)
		if !ok {
			continue
		}
		val, err := ch.GetAny()
		if err != nil {
			continue
		}
		result[name] = val
		any = true
	}
	if !any {
		return nil, false
	}
	return result, true
}
