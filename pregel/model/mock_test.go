package model

import (
	"context"
	"errors"
	"testing"
)

func TestMock_ReturnsResponsesInOrderThenRepeatsLast(t *testing.T) {
	m := &Mock{Responses: []ChatOut{{Text: "first"}, {Text: "second"}}}
	ctx := context.Background()

	out, err := m.Chat(ctx, nil, nil)
	if err != nil || out.Text != "first" {
		t.Fatalf("expected %q, got %+v (err %v)", "first", out, err)
	}
	out, _ = m.Chat(ctx, nil, nil)
	if out.Text != "second" {
		t.Fatalf("expected %q, got %+v", "second", out)
	}
	out, _ = m.Chat(ctx, nil, nil)
	if out.Text != "second" {
		t.Fatalf("expected the last response to repeat, got %+v", out)
	}
}

func TestMock_ReturnsConfiguredError(t *testing.T) {
	boom := errors.New("boom")
	m := &Mock{Err: boom}
	_, err := m.Chat(context.Background(), nil, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestMock_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &Mock{Responses: []ChatOut{{Text: "never"}}}
	if _, err := m.Chat(ctx, nil, nil); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestMock_RecordsCallHistory(t *testing.T) {
	m := &Mock{}
	messages := []Message{{Role: RoleUser, Content: "hi"}}
	_, _ = m.Chat(context.Background(), messages, nil)
	_, _ = m.Chat(context.Background(), messages, nil)

	if m.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", m.CallCount())
	}
	calls := m.Calls()
	if len(calls) != 2 || calls[0].Messages[0].Content != "hi" {
		t.Errorf("expected recorded messages, got %+v", calls)
	}

	m.Reset()
	if m.CallCount() != 0 {
		t.Error("expected Reset to clear call history")
	}
}
