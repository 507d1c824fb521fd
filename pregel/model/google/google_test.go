package google

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/agzarifis/pregel-go/pregel/model"
)

type fakeGoogleClient struct {
	gotMessages []model.Message
	out         model.ChatOut
	err         error
}

func (f *fakeGoogleClient) generateContent(ctx context.Context, messages []model.Message, tools []model.ToolSpec) (model.ChatOut, error) {
	f.gotMessages = messages
	return f.out, f.err
}

func TestNew_DefaultsModelNameWhenEmpty(t *testing.T) {
	c := New("key", "")
	if c.modelName != "gemini-1.5-flash" {
		t.Errorf("expected the default model, got %q", c.modelName)
	}
}

func TestChat_DelegatesToClient(t *testing.T) {
	fake := &fakeGoogleClient{out: model.ChatOut{Text: "hi"}}
	c := &Chat{client: fake}

	messages := []model.Message{{Role: model.RoleUser, Content: "hello"}}
	out, err := c.Chat(context.Background(), messages, nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out.Text != "hi" {
		t.Errorf("expected %q, got %q", "hi", out.Text)
	}
	if len(fake.gotMessages) != 1 {
		t.Errorf("expected the messages forwarded, got %+v", fake.gotMessages)
	}
}

func TestChat_RejectsCancelledContextBeforeCallingClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake := &fakeGoogleClient{}
	c := &Chat{client: fake}

	if _, err := c.Chat(ctx, nil, nil); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if fake.gotMessages != nil {
		t.Error("expected the underlying client to never be called")
	}
}

func TestConvertMessages_SplitsSystemFromUserContent(t *testing.T) {
	messages := []model.Message{
		{Role: model.RoleSystem, Content: "be terse"},
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleSystem, Content: "and polite"},
	}
	system, parts := convertMessages(messages)
	if system != "be terse\n\nand polite" {
		t.Errorf("expected combined system instruction, got %q", system)
	}
	if len(parts) != 1 {
		t.Errorf("expected 1 non-system part, got %d", len(parts))
	}
}

func TestConvertMessages_SkipsEmptyContent(t *testing.T) {
	messages := []model.Message{{Role: model.RoleUser, Content: ""}}
	_, parts := convertMessages(messages)
	if len(parts) != 0 {
		t.Errorf("expected empty-content messages to be skipped, got %v", parts)
	}
}

func TestConvertType_MapsJSONSchemaTypeNames(t *testing.T) {
	cases := map[string]genai.Type{
		"string":  genai.TypeString,
		"number":  genai.TypeNumber,
		"integer": genai.TypeInteger,
		"boolean": genai.TypeBoolean,
		"array":   genai.TypeArray,
		"object":  genai.TypeObject,
		"bogus":   genai.TypeUnspecified,
	}
	for in, want := range cases {
		if got := convertType(in); got != want {
			t.Errorf("convertType(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestConvertSchema_BuildsPropertiesAndRequired(t *testing.T) {
	schema := map[string]interface{}{
		"properties": map[string]interface{}{
			"q": map[string]interface{}{"type": "string", "description": "query"},
		},
		"required": []interface{}{"q"},
	}
	got := convertSchema(schema)
	if got.Type != genai.TypeObject {
		t.Errorf("expected object type, got %v", got.Type)
	}
	if got.Properties["q"].Type != genai.TypeString || got.Properties["q"].Description != "query" {
		t.Errorf("expected the q property to be converted, got %+v", got.Properties["q"])
	}
	if len(got.Required) != 1 || got.Required[0] != "q" {
		t.Errorf("expected required=[q], got %v", got.Required)
	}
}

func TestConvertSchema_NilSchemaReturnsNil(t *testing.T) {
	if got := convertSchema(nil); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestConvertResponse_ExtractsTextToolCallsAndUsage(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		UsageMetadata: &genai.UsageMetadata{PromptTokenCount: 10, CandidatesTokenCount: 5},
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text("hello"),
				genai.FunctionCall{Name: "search", Args: map[string]interface{}{"q": "go"}},
			}}},
		},
	}
	out := convertResponse(resp)
	if out.Text != "hello" {
		t.Errorf("expected text %q, got %q", "hello", out.Text)
	}
	if len(out.ToolCalls) != 1 || out.ToolCalls[0].Name != "search" {
		t.Errorf("expected a search tool call, got %+v", out.ToolCalls)
	}
	if out.InputTokens != 10 || out.OutputTokens != 5 {
		t.Errorf("expected token usage from UsageMetadata, got %+v", out)
	}
}

func TestConvertResponse_EmptyCandidatesReturnsEmptyOut(t *testing.T) {
	out := convertResponse(&genai.GenerateContentResponse{})
	if out.Text != "" || len(out.ToolCalls) != 0 {
		t.Errorf("expected an empty ChatOut, got %+v", out)
	}
}
