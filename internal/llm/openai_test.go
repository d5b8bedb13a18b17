package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// openaiStub serves a canned chat completion and returns a provider
// wired to it.
func openaiStub(t *testing.T, status int, body map[string]any) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: "gpt-4o-mini"}
}

func openaiCompletion(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	p := openaiStub(t, http.StatusOK, openaiCompletion(rx7Fact, "stop"))

	resp, err := p.Generate(context.Background(), carFactRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != rx7Fact {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("stop reason = %q, want %q", resp.StopReason, StopEnd)
	}
}

func TestOpenAIProvider_TruncatedStructuredOutput(t *testing.T) {
	p := openaiStub(t, http.StatusOK, openaiCompletion(`{"headline":"Rotary redli`, "length"))

	req := carFactRequest()
	req.Schema = &Schema{Name: "car-fact", Definition: map[string]any{"type": "object"}}

	_, err := p.Generate(context.Background(), req)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	apiError := func(kind, msg string) map[string]any {
		return map[string]any{
			"error": map[string]any{"type": kind, "message": msg},
		}
	}

	t.Run("rate limited", func(t *testing.T) {
		p := openaiStub(t, http.StatusTooManyRequests, apiError("tokens", "slow down"))
		_, err := p.Generate(context.Background(), carFactRequest())
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		p := openaiStub(t, http.StatusInternalServerError, apiError("server_error", "boom"))
		_, err := p.Generate(context.Background(), carFactRequest())
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
		}
	})
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("model = %q", p.ModelID())
	}
}

func TestNewOpenAIProvider_BaseURLOverride(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://openrouter.ai/api/v1",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
