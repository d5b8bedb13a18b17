package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const rx7Fact = `{"headline":"Rotary redline","detail":"The RX-7 spins past 8000 rpm."}`

// anthropicStub serves a canned Messages API response and returns a
// provider wired to it.
func anthropicStub(t *testing.T, status int, body map[string]any) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stopReason string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stopReason,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func carFactRequest() Request {
	return Request{
		System:    "You are a car historian.",
		Messages:  []Message{{Role: RoleUser, Content: "Share a fact about the 1993 Mazda RX-7."}},
		MaxTokens: 256,
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	p := anthropicStub(t, http.StatusOK, anthropicMessage(rx7Fact, "end_turn"))

	resp, err := p.Generate(context.Background(), carFactRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != rx7Fact {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.OutputTokens != 30 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("stop reason = %q, want %q", resp.StopReason, StopEnd)
	}
}

func TestAnthropicProvider_TruncatedStructuredOutput(t *testing.T) {
	p := anthropicStub(t, http.StatusOK, anthropicMessage(`{"headline":"Rotary redli`, "max_tokens"))

	req := carFactRequest()
	req.Schema = &Schema{Name: "car-fact", Definition: map[string]any{"type": "object"}}

	_, err := p.Generate(context.Background(), req)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	apiError := func(kind, msg string) map[string]any {
		return map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": msg},
		}
	}

	t.Run("rate limited", func(t *testing.T) {
		p := anthropicStub(t, http.StatusTooManyRequests, apiError("rate_limit_error", "slow down"))
		_, err := p.Generate(context.Background(), carFactRequest())
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		p := anthropicStub(t, http.StatusInternalServerError, apiError("api_error", "boom"))
		_, err := p.Generate(context.Background(), carFactRequest())
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
		}
	})
}

func TestAnthropicProvider_ModelID(t *testing.T) {
	p := &AnthropicProvider{model: "claude-sonnet-4-20250514"}
	if p.ModelID() != "claude-sonnet-4-20250514" {
		t.Fatalf("model = %q", p.ModelID())
	}
}

func TestAnthropicAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"}, // pinned ID untouched
	}
	for _, tt := range tests {
		if got := canonicalModel(tt.alias, anthropicAliases); got != tt.want {
			t.Errorf("canonicalModel(%q) = %q, want %q", tt.alias, got, tt.want)
		}
	}
}
