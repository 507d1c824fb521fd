package tool

import (
	"context"
	"errors"
	"testing"
)

func TestMockTool_NameAndCallCycleThroughResponses(t *testing.T) {
	m := &MockTool{ToolName: "calc", Responses: []map[string]interface{}{
		{"result": 1}, {"result": 2},
	}}
	if m.Name() != "calc" {
		t.Errorf("expected Name() %q, got %q", "calc", m.Name())
	}

	out, err := m.Call(context.Background(), nil)
	if err != nil || out["result"] != 1 {
		t.Fatalf("expected result=1, got %v (err %v)", out, err)
	}
	out, _ = m.Call(context.Background(), nil)
	if out["result"] != 2 {
		t.Fatalf("expected result=2, got %v", out)
	}
	out, _ = m.Call(context.Background(), nil)
	if out["result"] != 2 {
		t.Fatalf("expected the last response to repeat, got %v", out)
	}
}

func TestMockTool_ReturnsConfiguredError(t *testing.T) {
	boom := errors.New("boom")
	m := &MockTool{Err: boom}
	if _, err := m.Call(context.Background(), nil); !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func TestMockTool_RecordsCallHistoryAndResets(t *testing.T) {
	m := &MockTool{}
	_, _ = m.Call(context.Background(), map[string]interface{}{"x": 1})
	if m.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", m.CallCount())
	}
	if m.Calls()[0].Input["x"] != 1 {
		t.Errorf("expected the input to be recorded, got %+v", m.Calls())
	}
	m.Reset()
	if m.CallCount() != 0 {
		t.Error("expected Reset to clear history")
	}
}

func TestMockTool_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &MockTool{}
	if _, err := m.Call(ctx, nil); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
