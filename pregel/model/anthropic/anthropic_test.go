package anthropic

import (
	"context"
	"strings"
	"testing"

	"github.com/agzarifis/pregel-go/pregel/model"
)

type fakeAnthropicClient struct {
	gotSystem   string
	gotMessages []model.Message
	out         model.ChatOut
	err         error
}

func (f *fakeAnthropicClient) createMessage(ctx context.Context, systemPrompt string, messages []model.Message, tools []model.ToolSpec) (model.ChatOut, error) {
	f.gotSystem = systemPrompt
	f.gotMessages = messages
	return f.out, f.err
}

func TestNew_DefaultsModelNameWhenEmpty(t *testing.T) {
	c := New("key", "")
	if c.modelName != "claude-3-5-sonnet-20241022" {
		t.Errorf("expected the default model, got %q", c.modelName)
	}
}

func TestChat_ExtractsSystemPromptBeforeDelegating(t *testing.T) {
	fake := &fakeAnthropicClient{out: model.ChatOut{Text: "hi"}}
	c := &Chat{client: fake}

	messages := []model.Message{
		{Role: model.RoleSystem, Content: "be terse"},
		{Role: model.RoleUser, Content: "hello"},
	}
	out, err := c.Chat(context.Background(), messages, nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out.Text != "hi" {
		t.Errorf("expected %q, got %q", "hi", out.Text)
	}
	if fake.gotSystem != "be terse" {
		t.Errorf("expected system prompt extracted, got %q", fake.gotSystem)
	}
	if len(fake.gotMessages) != 1 || fake.gotMessages[0].Content != "hello" {
		t.Errorf("expected only the non-system message forwarded, got %+v", fake.gotMessages)
	}
}

func TestChat_RejectsCancelledContextBeforeCallingClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake := &fakeAnthropicClient{}
	c := &Chat{client: fake}

	if _, err := c.Chat(ctx, nil, nil); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if fake.gotMessages != nil {
		t.Error("expected the underlying client to never be called")
	}
}

func TestExtractSystemPrompt_CombinesMultipleSystemMessages(t *testing.T) {
	messages := []model.Message{
		{Role: model.RoleSystem, Content: "a"},
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleSystem, Content: "b"},
	}
	system, rest := extractSystemPrompt(messages)
	if system != "a\n\nb" {
		t.Errorf("expected combined system prompt, got %q", system)
	}
	if len(rest) != 1 || rest[0].Content != "hi" {
		t.Errorf("expected only the user message remaining, got %+v", rest)
	}
}

func TestExtractSystemPrompt_NoSystemMessages(t *testing.T) {
	messages := []model.Message{{Role: model.RoleUser, Content: "hi"}}
	system, rest := extractSystemPrompt(messages)
	if system != "" {
		t.Errorf("expected empty system prompt, got %q", system)
	}
	if len(rest) != 1 {
		t.Errorf("expected the message to pass through, got %+v", rest)
	}
}

func TestConvertToolInput_PassesThroughMapOrWrapsOther(t *testing.T) {
	if got := convertToolInput(nil); got != nil {
		t.Errorf("expected nil for nil input, got %v", got)
	}
	m := map[string]interface{}{"a": 1}
	if got := convertToolInput(m); got["a"] != 1 {
		t.Errorf("expected the map passed through, got %v", got)
	}
	if got := convertToolInput(42); got["_raw"] != 42 {
		t.Errorf("expected a _raw wrap for a non-map input, got %v", got)
	}
}

func TestDefaultClient_RequiresAPIKey(t *testing.T) {
	c := &defaultClient{}
	_, err := c.createMessage(context.Background(), "", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Fatalf("expected an API key required error, got %v", err)
	}
}
