package pregel

import "sync"

// write is a single (channel-name, value) pair accumulated by a running
// process during a step.
type write struct {
	channel string
	value   interface{}
}

// PendingWrites is the ordered, concurrency-safe accumulation buffer for one
// step's writes. Append is safe for concurrent producers (each process's
// goroutine); snapshot is only ever called by the single step coordinator after
// all tasks for the step have joined, per spec.md §3/§5.
type PendingWrites struct {
	mu     sync.Mutex
	writes []write
}

func newPendingWrites() *PendingWrites {
	return &PendingWrites{}
}

// Append adds a (channel, value) write. Safe for concurrent callers; the
// relative order of writes from a single caller is preserved, but the
// interleaving across concurrent callers is unspecified (spec.md §9).
func (p *PendingWrites) Append(channel string, value interface{}) {
	p.mu.Lock()
	p.writes = append(p.writes, write{channel: channel, value: value})
	p.mu.Unlock()
}

// snapshot returns a defensive copy of the accumulated writes, in the order
// they were appended.
func (p *PendingWrites) snapshot() []write {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]write, len(p.writes))
	copy(out, p.writes)
	return out
}

// Task pairs a ready-to-run process with the input the Planner computed for
// it.
type Task struct {
	Process Process
	Input   interface{}
}

// planResult is the outcome of one planner pass: the next step's ready
// tasks, the set of channel names actually updated, and any unrouted writes
// observed (for diagnostics / strict-mode enforcement).
type planResult struct {
	tasks            []Task
	updatedChannels  map[string]bool
	unroutedChannels []string
}

// applyWritesAndPrepareNextTasks is the Planner: a pure function (given its
// inputs) that reduces pendingWrites into the registry's channels and
// computes which processes are ready for the next step. It is grounded
// directly on `_apply_writes_and_prepare_next_tasks` in
// original_source/permchain/pregel/__init__.py.
func applyWritesAndPrepareNextTasks(processes []Process, registry *Registry, pendingWrites []write) (planResult, error) {
	// Step 1: group writes by channel name, preserving insertion order
	// within each group.
	byChannel := make(map[string][]interface{})
	order := make([]string, 0)
	for _, w := range pendingWrites {
		if _, seen := byChannel[w.channel]; !seen {
			order = append(order, w.channel)
		}
		byChannel[w.channel] = append(byChannel[w.channel], w.value)
	}

	// Step 2: clear every drainable (Topic-style) channel at the step
	// boundary, then apply writes to channels that exist; drop (with a
	// diagnostic) writes targeting unregistered channels.
	for _, name := range registry.Names() {
		ch, _ := registry.Get(name)
		if drainer, ok := ch.(interface{ Drain() }); ok {
			drainer.Drain()
		}
	}
	updated := make(map[string]bool, len(order))
	var unrouted []string
	for _, name := range order {
		ch, ok := registry.Get(name)
		if !ok {
			unrouted = append(unrouted, name)
			continue
		}
		if err := ch.UpdateAny(byChannel[name]); err != nil {
			return planResult{}, newTopologyError("update channel %q: %v", name, err)
		}
		updated[name] = true
	}

	// Step 3: determine readiness for each process, in declaration order
	// (deterministic tie-break per spec.md §4.3 step 4).
	tasks := make([]Task, 0, len(processes))
	for _, proc := range processes {
		switch p := proc.(type) {
		case InvokeProcess:
			task, ready, err := planInvoke(p, registry, updated)
			if err != nil {
				return planResult{}, err
			}
			if ready {
				tasks = append(tasks, task)
			}
		case BatchProcess:
			task, ready, err := planBatch(p, registry, updated)
			if err != nil {
				return planResult{}, err
			}
			if ready {
				tasks = append(tasks, task)
			}
		default:
			return planResult{}, newTopologyError("unknown process kind %T", proc)
		}
	}

	return planResult{tasks: tasks, updatedChannels: updated, unroutedChannels: unrouted}, nil
}

func planInvoke(p InvokeProcess, registry *Registry, updated map[string]bool) (Task, bool, error) {
	names := p.Subscription.Names()
	any := false
	for _, n := range names {
		if updated[n] {
			any = true
			break
		}
	}
	if !any {
		return Task{}, false, nil
	}

	if p.Subscription.IsRaw() {
		ch, ok := registry.Get(p.Subscription.Raw)
		if !ok {
			return Task{}, false, newTopologyError("invoke process %q subscribes to unknown channel %q", p.Name, p.Subscription.Raw)
		}
		val, err := ch.GetAny()
		if err != nil {
			// A process cannot run before all of its inputs exist: skip,
			// not an error (spec.md §4.3 step 3).
			return Task{}, false, nil
		}
		return Task{Process: p, Input: val}, true, nil
	}

	values := make(map[string]interface{}, len(p.Subscription.Record))
	for key, chanName := range p.Subscription.Record {
		ch, ok := registry.Get(chanName)
		if !ok {
			return Task{}, false, newTopologyError("invoke process %q subscribes to unknown channel %q", p.Name, chanName)
		}
		val, err := ch.GetAny()
		if err != nil {
			return Task{}, false, nil
		}
		values[key] = val
	}
	return Task{Process: p, Input: values}, true, nil
}

func planBatch(p BatchProcess, registry *Registry, updated map[string]bool) (Task, bool, error) {
	if !updated[p.Channel] {
		return Task{}, false, nil
	}
	ch, ok := registry.Get(p.Channel)
	if !ok {
		return Task{}, false, newTopologyError("batch process %q subscribes to unknown channel %q", p.Name, p.Channel)
	}
	// Readiness implies a just-applied update, so Get is guaranteed to
	// succeed (spec.md §4.3 step 3, Batch case).
	val, err := ch.GetAny()
	if err != nil {
		return Task{}, false, newTopologyError("batch process %q: channel %q updated but unreadable: %v", p.Name, p.Channel, err)
	}

	seq, ok := toSlice(val)
	if !ok {
		return Task{}, false, newTopologyError("batch process %q: channel %q value is not a sequence", p.Name, p.Channel)
	}

	if p.Key == "" {
		return Task{Process: p, Input: seq}, true, nil
	}

	wrapped := make([]interface{}, len(seq))
	for i, v := range seq {
		wrapped[i] = map[string]interface{}{p.Key: v}
	}
	return Task{Process: p, Input: wrapped}, true, nil
}

// toSlice converts a batch channel's current value to []interface{}. A
// []interface{} value is returned as is; any other value (for example the
// []T that channels.Topic[T].Get returns) goes through sliceViaReflection.
func toSlice(val interface{}) ([]interface{}, bool) {
	switch v := val.(type) {
	case []interface{}:
		return v, true
	default:
		return sliceViaReflection(v)
	}
}
