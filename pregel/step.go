package pregel

import (
	"context"
	"sync"
	"time"

	"github.com/agzarifis/pregel-go/pregel/emit"
)

// stepOutcome is the StepRunner's verdict for one completed step: either a
// set of tasks is ready for the next step, or the run is done (no ready
// tasks — Halted), or it failed.
type stepOutcome struct {
	tasks   []Task
	updated map[string]bool
	halted  bool
	failErr error
}

// stepRunner drives the run-to-halt state machine named in SPEC_FULL.md
// §4.4: Seeded → Running(step=k) → next/Yielding/Halted/Failed. One
// stepRunner is constructed per Engine run and is not reused.
//
// It is grounded on the teacher's runConcurrent worker-pool pattern
// (graph/engine.go), simplified from a frontier/priority-queue scheduler to
// a flat per-step fan-out since a BSP step has no inter-task ordering: every
// ready task in a step runs concurrently and the step only advances once
// they have all joined (or the first one fails, or the step times out),
// mirroring the Python original's
// `concurrent.futures.wait(futures, return_when=FIRST_EXCEPTION, timeout=step_timeout)`.
type stepRunner struct {
	runID    string
	registry *Registry

	recursionLimit       int
	stepTimeout          time.Duration
	maxConcurrent        int
	strictRecursionLimit bool
	strictUnroutedWrites bool

	emitter     emit.Emitter
	metrics     *Metrics
	costTracker *CostTracker
}

// runStep executes one step's tasks concurrently and returns the next
// step's ready tasks (via the Planner), or signals halt/failure. tasks must
// be non-empty; callers halt before calling runStep with no ready tasks.
func (sr *stepRunner) runStep(ctx context.Context, step int, processes []Process, tasks []Task) stepOutcome {
	stepCtx := ctx
	var cancel context.CancelFunc
	if sr.stepTimeout > 0 {
		stepCtx, cancel = context.WithTimeout(ctx, sr.stepTimeout)
		defer cancel()
	} else {
		stepCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	sr.emit(emit.Event{RunID: sr.runID, Step: step, Msg: "step_start"})
	sr.metrics.setActiveTasks(len(tasks))
	started := time.Now()

	pending := newPendingWrites()
	var wg sync.WaitGroup
	errs := make(chan error, len(tasks))

	var sem chan struct{}
	if sr.maxConcurrent > 0 {
		sem = make(chan struct{}, sr.maxConcurrent)
	}

	for _, task := range tasks {
		task := task
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-stepCtx.Done():
					return
				}
			}
			sr.runTask(stepCtx, step, task, pending, errs)
		}()
	}

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	var runErr error
	select {
	case <-waitDone:
		select {
		case runErr = <-errs:
		default:
		}
	case err := <-errs:
		runErr = err
		cancel()
		<-waitDone
	case <-stepCtx.Done():
		<-waitDone
		select {
		case e := <-errs:
			runErr = e
		default:
			if ctx.Err() == nil {
				runErr = &TimeoutError{Step: step}
			}
		}
	}

	sr.metrics.setActiveTasks(0)
	sr.metrics.observeStepLatencySeconds(time.Since(started).Seconds())

	if runErr != nil {
		reason, msg := "failure", "cancelled"
		if _, ok := runErr.(*TimeoutError); ok {
			reason, msg = "timeout", "timeout"
		}
		sr.metrics.incCancellation(reason)
		sr.emit(emit.Event{RunID: sr.runID, Step: step, Msg: msg, Meta: map[string]interface{}{"error": runErr.Error()}})
		return stepOutcome{failErr: runErr}
	}

	writes := pending.snapshot()
	sr.metrics.setPendingWrites(len(writes))

	plan, err := applyWritesAndPrepareNextTasks(processes, sr.registry, writes)
	if err != nil {
		return stepOutcome{failErr: err}
	}

	if len(plan.unroutedChannels) > 0 {
		sr.metrics.incUnroutedWrites(len(plan.unroutedChannels))
		if sr.strictUnroutedWrites {
			return stepOutcome{failErr: &UnroutedWriteError{Step: step, Channel: plan.unroutedChannels[0]}}
		}
		for _, ch := range plan.unroutedChannels {
			sr.emit(emit.Event{RunID: sr.runID, Step: step, Msg: "unrouted_write", Meta: map[string]interface{}{"channel": ch}})
		}
	}

	sr.emit(emit.Event{RunID: sr.runID, Step: step, Msg: "step_end", Meta: map[string]interface{}{"next_tasks": len(plan.tasks)}})

	if len(plan.tasks) == 0 {
		sr.emit(emit.Event{RunID: sr.runID, Step: step, Msg: "halt"})
		return stepOutcome{halted: true, updated: plan.updatedChannels}
	}
	return stepOutcome{tasks: plan.tasks, updated: plan.updatedChannels}
}

// runTask invokes a single task's process, routing its Send calls into
// pending and surfacing any error (first one wins; later ones are dropped
// since the step is already cancelled).
func (sr *stepRunner) runTask(ctx context.Context, step int, task Task, pending *PendingWrites, errs chan<- error) {
	name := processName(task.Process)
	sr.emit(emit.Event{RunID: sr.runID, Step: step, Process: name, Msg: "task_start"})

	rc := RunContext{
		Step: step,
		Send: func(channel string, value interface{}) {
			pending.Append(channel, value)
		},
		Read: func(channel string) (interface{}, bool) {
			ch, ok := sr.registry.Get(channel)
			if !ok {
				return nil, false
			}
			val, err := ch.GetAny()
			if err != nil {
				return nil, false
			}
			return val, true
		},
		CostTracker: sr.costTracker,
	}

	var runFunc ProcessFunc
	switch p := task.Process.(type) {
	case InvokeProcess:
		runFunc = p.Run
	case BatchProcess:
		runFunc = p.Run
	}

	err := runFunc(ctx, rc, task.Input)
	if err != nil {
		sr.emit(emit.Event{RunID: sr.runID, Step: step, Process: name, Msg: "task_error", Meta: map[string]interface{}{"error": err.Error()}})
		select {
		case errs <- &UserFailureError{Step: step, Cause: err}:
		default:
		}
		return
	}
	sr.emit(emit.Event{RunID: sr.runID, Step: step, Process: name, Msg: "task_end"})
}

func processName(p Process) string {
	switch v := p.(type) {
	case InvokeProcess:
		return v.Name
	case BatchProcess:
		return v.Name
	default:
		return ""
	}
}

func (sr *stepRunner) emit(e emit.Event) {
	if sr.emitter == nil {
		return
	}
	sr.emitter.Emit(e)
}
