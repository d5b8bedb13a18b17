// Package llm abstracts the hosted model providers behind a single
// Generate call. carpick uses it for one thing: turning a make/model/year
// triple into a short trivia fact, with the response constrained to a
// JSON schema so the quiz can render it without cleanup.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is a single LLM backend. Implementations wrap a vendor SDK;
// decorators (retry, event logging) wrap other Providers.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the provider
	// requests structured output and the returned Content is JSON that
	// passed schema validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the resolved model identifier in use.
	ModelID() string
}

// Request is one prompt to the model.
type Request struct {
	// System sets the model's role. Optional.
	System string

	// Messages is the turn history. Fact generation sends exactly one
	// user turn naming the car.
	Messages []Message

	// Schema constrains the output. Nil means free-form text, returned
	// as a raw JSON string.
	Schema *Schema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature in [0, 1]. Zero value means deterministic.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the model output must satisfy.
type Schema struct {
	// Name labels the schema for the provider API (tool name on
	// Anthropic, response-format name on OpenAI). Kebab-case,
	// e.g. "car-fact".
	Name string

	// Description tells the model what the payload represents.
	Description string

	// Definition is the schema body as a plain map.
	Definition map[string]any
}

// Stop reasons, normalized across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is the model's answer.
type Response struct {
	// Content is the completion. Schema-constrained requests get the
	// validated JSON object; free-form requests get the raw text.
	Content json.RawMessage

	// Usage is the token accounting for this call.
	Usage Usage

	// Model is the model that actually served the request, as reported
	// by the provider.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
