package pregel

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestStepRunner(reg *Registry, stepTimeout time.Duration) *stepRunner {
	return &stepRunner{
		runID:       "test-run",
		registry:    reg,
		stepTimeout: stepTimeout,
	}
}

func TestStepRunner_RunStepAppliesWritesAndHaltsWhenNoOneIsReady(t *testing.T) {
	in := &fakeLastValue{}
	out := &fakeLastValue{}
	reg, err := NewRegistry(map[string]AnyChannel{"in": in, "out": out})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Teardown()

	proc := InvokeProcess{
		Name:         "writer",
		Subscription: Subscription{Raw: "in"},
		Writes:       []string{"out"},
		Run: func(ctx context.Context, rc RunContext, input interface{}) error {
			rc.Send("out", "done")
			return nil
		},
	}

	sr := newTestStepRunner(reg, 0)
	outcome := sr.runStep(context.Background(), 0, []Process{proc}, []Task{{Process: proc, Input: "seed"}})

	if outcome.failErr != nil {
		t.Fatalf("unexpected failure: %v", outcome.failErr)
	}
	if !outcome.halted {
		t.Fatal("expected the step to halt: the only process subscribes to \"in\", which this step never wrote")
	}
	got, _ := out.GetAny()
	if got != "done" {
		t.Errorf("expected \"done\", got %v", got)
	}
}

func TestStepRunner_RunStepSurfacesFirstTaskFailure(t *testing.T) {
	reg, err := NewRegistry(map[string]AnyChannel{"c": &fakeLastValue{}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Teardown()

	boom := errors.New("boom")
	proc := InvokeProcess{
		Name:         "failer",
		Subscription: Subscription{Raw: "c"},
		Run: func(ctx context.Context, rc RunContext, input interface{}) error {
			return boom
		},
	}

	sr := newTestStepRunner(reg, 0)
	outcome := sr.runStep(context.Background(), 0, []Process{proc}, []Task{{Process: proc, Input: nil}})

	var userErr *UserFailureError
	if !errors.As(outcome.failErr, &userErr) {
		t.Fatalf("expected *UserFailureError, got %v", outcome.failErr)
	}
	if !errors.Is(userErr, boom) {
		t.Errorf("expected Unwrap to expose the original error, got %v", userErr.Cause)
	}
}

func TestStepRunner_RunStepTimesOutSlowTask(t *testing.T) {
	reg, err := NewRegistry(map[string]AnyChannel{"c": &fakeLastValue{}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Teardown()

	proc := InvokeProcess{
		Name:         "sleeper",
		Subscription: Subscription{Raw: "c"},
		Run: func(ctx context.Context, rc RunContext, input interface{}) error {
			// Exits without reporting an error on cancellation: cancellation
			// itself isn't a process failure, so the step's own timeout
			// detection (not a wrapped UserFailureError) is what should
			// surface here.
			select {
			case <-time.After(2 * time.Second):
				return nil
			case <-ctx.Done():
				return nil
			}
		},
	}

	sr := newTestStepRunner(reg, 20*time.Millisecond)
	start := time.Now()
	outcome := sr.runStep(context.Background(), 0, []Process{proc}, []Task{{Process: proc, Input: nil}})
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	if !errors.As(outcome.failErr, &timeoutErr) {
		t.Fatalf("expected *TimeoutError, got %v", outcome.failErr)
	}
	if timeoutErr.Step != 0 {
		t.Errorf("expected Step 0, got %d", timeoutErr.Step)
	}
	if elapsed > time.Second {
		t.Errorf("expected the step to time out quickly, took %v", elapsed)
	}
}

func TestProcessName_ReturnsDeclaredNameForEachProcessKind(t *testing.T) {
	if got := processName(InvokeProcess{Name: "a"}); got != "a" {
		t.Errorf("expected \"a\", got %q", got)
	}
	if got := processName(BatchProcess{Name: "b"}); got != "b" {
		t.Errorf("expected \"b\", got %q", got)
	}
}
