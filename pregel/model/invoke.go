package model

import (
	"context"
	"fmt"

	"github.com/agzarifis/pregel-go/pregel"
)

// InvokeConfig configures AsInvoke.
type InvokeConfig struct {
	// Name is the constructed process's name.
	Name string

	// In is the channel this process subscribes to (single-keyless form).
	In string

	// Out is the channel the model's response text is sent to.
	Out string

	// System, if non-empty, is prepended as a system message on every call.
	System string

	// ModelName is recorded against CostTracker calls for pricing lookup
	// (e.g. "claude-3-5-sonnet-20241022"). Optional; an empty name is
	// recorded at zero cost.
	ModelName string

	// Tools are offered to the model on every call; may be nil.
	Tools []ToolSpec

	// Prompt builds the user-turn content from the subscribed channel's
	// current value. Required.
	Prompt func(in interface{}) string

	// OnToolCalls, if set, receives any tool calls the model returned
	// instead of (or alongside) text, so the caller can route them to a
	// tool-execution process via RunContext.Send. If nil, tool calls are
	// discarded.
	OnToolCalls func(rc pregel.RunContext, calls []ToolCall)
}

// AsInvoke turns any Chat implementation into an InvokeProcess: it
// subscribes to cfg.In, builds a one-turn (optionally system-prefixed)
// conversation via cfg.Prompt, calls chat.Chat, writes the response text to
// cfg.Out, and records token usage against rc.CostTracker when present.
// This is the concrete "user process implementation" the core engine leaves
// out of scope, supplied here as a ready-made collaborator — exactly as the
// teacher ships provider adapters alongside, not inside, its graph engine.
func AsInvoke(chat Chat, cfg InvokeConfig) pregel.InvokeProcess {
	if cfg.Prompt == nil {
		panic("model: AsInvoke requires cfg.Prompt")
	}

	writes := []string{}
	if cfg.Out != "" {
		writes = append(writes, cfg.Out)
	}

	return pregel.InvokeProcess{
		Name:         cfg.Name,
		Subscription: pregel.Subscription{Raw: cfg.In},
		Writes:       writes,
		Run: func(ctx context.Context, rc pregel.RunContext, input interface{}) error {
			var messages []Message
			if cfg.System != "" {
				messages = append(messages, Message{Role: RoleSystem, Content: cfg.System})
			}
			messages = append(messages, Message{Role: RoleUser, Content: cfg.Prompt(input)})

			out, err := chat.Chat(ctx, messages, cfg.Tools)
			if err != nil {
				return fmt.Errorf("model: process %q: %w", cfg.Name, err)
			}

			if rc.CostTracker != nil {
				rc.CostTracker.RecordCall(cfg.ModelName, out.InputTokens, out.OutputTokens, cfg.Name, rc.Step)
			}

			if len(out.ToolCalls) > 0 && cfg.OnToolCalls != nil {
				cfg.OnToolCalls(rc, out.ToolCalls)
			}

			if cfg.Out != "" && out.Text != "" {
				rc.Send(cfg.Out, out.Text)
			}
			return nil
		},
	}
}
