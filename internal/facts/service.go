// Package facts generates car trivia through an LLM provider. Generation
// runs in the background so the quiz never blocks on the network; the
// round feedback view picks up whatever is ready when it renders.
package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/carpick/carpick/internal/llm"
)

// Service generates car facts asynchronously.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *Fact
	err     error
	ready   bool
}

// NewService creates a fact generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// RequestFact starts async fact generation. Only one fact is in-flight
// at a time — new requests replace pending ones.
func (s *Service) RequestFact(ctx context.Context, input FactInput) {
	go func() {
		fact, err := s.Generate(ctx, input)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = fact
		s.err = err
		s.ready = true
	}()
}

// ConsumeFact returns the pending fact if one is ready.
// Returns (nil, false) if no fact is ready yet or generation failed.
// After consumption, the pending slot is cleared.
func (s *Service) ConsumeFact() (*Fact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	fact := s.pending
	s.pending = nil
	s.ready = false
	s.err = nil
	return fact, fact != nil
}

type factOutput struct {
	Headline string `json:"headline"`
	Detail   string `json:"detail"`
}

// Generate produces a fact synchronously. The HTTP API calls this
// directly; the TUI goes through RequestFact/ConsumeFact.
func (s *Service) Generate(ctx context.Context, input FactInput) (*Fact, error) {
	ctx = llm.WithPurpose(ctx, "car_fact")

	req := llm.Request{
		System: factSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFactUserMessage(input)},
		},
		Schema:      FactSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fact generation: %w", err)
	}

	// Providers validate schema-constrained output themselves, but the
	// service can't know what it was handed (a mock, a decorator over a
	// lax backend), so the payload is checked again here before use.
	if err := llm.ValidateJSON(FactSchema, resp.Content); err != nil {
		return nil, fmt.Errorf("fact payload: %w", err)
	}

	var out factOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse fact response: %w", err)
	}

	return &Fact{
		Make:     input.Make,
		Model:    input.Model,
		Year:     input.Year,
		Headline: out.Headline,
		Detail:   out.Detail,
	}, nil
}
