// Package model supplies ready-made Invoke-process collaborators for
// LLM-backed processes: a provider-agnostic Chat interface, three real
// provider adapters, and a mock for tests, so that building a chat-driven
// process never requires hand-rolling a provider SDK call inline (grounded
// on the teacher's graph/model package, which ships its provider adapters
// alongside rather than inside the graph engine).
package model

import "context"

// Chat is the interface every LLM provider adapter in this package and its
// subpackages implements. It abstracts away the wire format differences
// between Anthropic, OpenAI, and Google's chat-completion APIs behind one
// signature.
type Chat interface {
	// Chat sends messages to the model and returns its response. tools may
	// be nil if the call doesn't offer tool use.
	Chat(ctx context.Context, messages []Message, tools []ToolSpec) (ChatOut, error)
}

// Message is one turn of a conversation.
type Message struct {
	Role    string
	Content string
}

// Standard role constants, matching the conventions used by every provider
// adapter in this package.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolSpec describes one tool a model may call, in JSON-Schema-ish form.
type ToolSpec struct {
	Name        string
	Description string
	Schema      map[string]interface{}
}

// ChatOut is a model's response: text, tool calls, or both, plus the token
// counts needed to attribute cost via CostTracker.
type ChatOut struct {
	Text      string
	ToolCalls []ToolCall

	// InputTokens and OutputTokens are the provider-reported usage for this
	// call. Zero when a provider adapter doesn't expose usage (callers
	// should not treat zero as "free").
	InputTokens  int
	OutputTokens int
}

// ToolCall is one request from the model to invoke a named tool.
type ToolCall struct {
	Name  string
	Input map[string]interface{}
}
