package model

import (
	"context"
	"sync"
)

// Mock is a test double for Chat: configurable canned responses, call
// history, and error injection, so a process built on AsInvoke can be
// exercised without a network call (grounded on the teacher's
// graph/model.MockChatModel).
type Mock struct {
	// Responses is returned in order, one per call; the last response
	// repeats once exhausted. A nil slice makes every call return a zero
	// ChatOut.
	Responses []ChatOut

	// Err, if set, is returned instead of a response.
	Err error

	mu        sync.Mutex
	calls     []MockCall
	callIndex int
}

// MockCall records one Chat invocation.
type MockCall struct {
	Messages []Message
	Tools    []ToolSpec
}

// Chat implements Chat.
func (m *Mock) Chat(ctx context.Context, messages []Message, tools []ToolSpec) (ChatOut, error) {
	if ctx.Err() != nil {
		return ChatOut{}, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Messages: messages, Tools: tools})

	if m.Err != nil {
		return ChatOut{}, m.Err
	}
	if len(m.Responses) == 0 {
		return ChatOut{}, nil
	}

	idx := m.callIndex
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	} else {
		m.callIndex++
	}
	return m.Responses[idx], nil
}

// Calls returns the call history so far.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Chat has been called.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears call history, for reuse across test cases.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.callIndex = 0
}

var _ Chat = (*Mock)(nil)
