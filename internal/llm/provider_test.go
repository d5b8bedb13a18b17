package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	first := json.RawMessage(`{"headline":"NSX ran titanium rods","detail":"The 1991 NSX was the first production car with titanium connecting rods."}`)
	second := json.RawMessage(`{"headline":"Defender kept leaf springs late","detail":"Land Rover moved the line to coils only in 1983."}`)
	mock := NewMockProvider(
		MockResponse{Content: first, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: second},
	)

	resp, err := mock.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Share a fact about the 1991 Acura NSX."}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != string(first) {
		t.Fatalf("first content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 10 {
		t.Fatalf("input tokens = %d, want 10", resp.Usage.InputTokens)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("stop reason = %q, want %q", resp.StopReason, StopEnd)
	}

	resp, err = mock.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Share a fact about the 1995 Land Rover Defender."}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != string(second) {
		t.Fatalf("second content = %s", resp.Content)
	}
}

func TestMockProvider_ExhaustedQueue(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: miataFact})

	_, _ = mock.Generate(context.Background(), Request{
		System:   "You are a car historian.",
		Messages: []Message{{Role: RoleUser, Content: "Share a fact about the 1994 Mazda Miata."}},
		Schema:   &Schema{Name: "car-fact"},
	})

	if mock.CallCount() != 1 {
		t.Fatalf("call count = %d, want 1", mock.CallCount())
	}
	got := mock.Calls[0]
	if got.System != "You are a car historian." {
		t.Fatalf("system = %q", got.System)
	}
	if got.Schema == nil || got.Schema.Name != "car-fact" {
		t.Fatal("recorded request should carry the schema")
	}
}

func TestMockProvider_CannedErrors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestPurposeTag(t *testing.T) {
	if p := PurposeFrom(context.Background()); p != "unknown" {
		t.Fatalf("untagged purpose = %q, want unknown", p)
	}
	ctx := WithPurpose(context.Background(), "car_fact")
	if p := PurposeFrom(ctx); p != "car_fact" {
		t.Fatalf("purpose = %q, want car_fact", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "AIza-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "copilot"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
