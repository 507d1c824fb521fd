package channels

import (
	"errors"
	"testing"

	"github.com/agzarifis/pregel-go/pregel"
)

func TestAccumulator_FoldsAcrossSteps(t *testing.T) {
	c := NewAccumulator[int](SumInt)

	if err := c.Update([]int{1, 2}); err != nil {
		t.Fatalf("Update step 1: %v", err)
	}
	if err := c.Update([]int{3}); err != nil {
		t.Fatalf("Update step 2: %v", err)
	}

	got, err := c.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 6 {
		t.Errorf("expected accumulated total 6, got %d", got)
	}
}

func TestAccumulator_EmptyBeforeUpdate(t *testing.T) {
	c := NewAccumulator[int](SumInt)
	if _, err := c.Get(); !errors.Is(err, pregel.ErrEmptyChannel) {
		t.Fatalf("expected ErrEmptyChannel, got %v", err)
	}
}

func TestAccumulator_Appender(t *testing.T) {
	c := NewAccumulator[[]string](Appender[string])
	_ = c.Update([][]string{{"a", "b"}})
	_ = c.Update([][]string{{"c"}})

	got, err := c.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestAccumulator_SetUnion(t *testing.T) {
	c := NewAccumulator[map[string]struct{}](SetUnion[string])
	_ = c.Update([]map[string]struct{}{{"a": {}}})
	_ = c.Update([]map[string]struct{}{{"b": {}, "a": {}}})

	got, err := c.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 elements in union, got %d", len(got))
	}
}

func TestAccumulator_CheckpointRoundTrip(t *testing.T) {
	c := NewAccumulator[int](SumInt)
	_ = c.Update([]int{10, 20})

	snapshot, err := c.CheckpointValue()
	if err != nil {
		t.Fatalf("CheckpointValue: %v", err)
	}

	restored := NewAccumulator[int](SumInt)
	if err := restored.RestoreValue(snapshot); err != nil {
		t.Fatalf("RestoreValue: %v", err)
	}
	// Further updates after restore continue accumulating from the
	// restored total, not from zero.
	_ = restored.Update([]int{5})
	got, err := restored.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 35 {
		t.Errorf("expected 35 after restore + update, got %d", got)
	}
}
