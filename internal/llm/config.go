package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the fact-generation backend.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter",
	// or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// AnthropicConfig holds the Anthropic backend settings.
type AnthropicConfig struct {
	APIKey string
	Model  string // alias or full ID; defaults to "claude-haiku"
}

// OpenAIConfig holds the OpenAI backend settings.
type OpenAIConfig struct {
	APIKey  string
	Model   string // defaults to "gpt-4o-mini"
	BaseURL string // optional override for compatible hosts
}

// GeminiConfig holds the Gemini backend settings.
type GeminiConfig struct {
	APIKey string
	Model  string // alias or full ID; defaults to "gemini-flash"
}

// OpenRouterConfig holds the OpenRouter backend settings.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor/model slug
	BaseURL string // defaults to the public OpenRouter endpoint
}

// RetryConfig tunes the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the baseline configuration: Anthropic with the
// cheap model, three attempts, 30 second budget.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv layers CARPICK_* environment variables over the
// defaults. Unset variables leave the default in place.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	overlay := map[string]*string{
		"CARPICK_LLM_PROVIDER":       &cfg.Provider,
		"CARPICK_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"CARPICK_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"CARPICK_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"CARPICK_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"CARPICK_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"CARPICK_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"CARPICK_GEMINI_MODEL":       &cfg.Gemini.Model,
		"CARPICK_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"CARPICK_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	}
	for key, dst := range overlay {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	return cfg
}

// DiscoverConfig falls back to the vendors' own API key variables when
// no CARPICK_* config is present, so a machine that already talks to
// one of these providers gets car facts with zero setup. Checked in
// order: Gemini, OpenAI, Anthropic, OpenRouter (cheapest first).
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	candidates := []struct {
		envKey   string
		provider string
		dst      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, p := range candidates {
		if k := os.Getenv(p.envKey); k != "" {
			cfg.Provider = p.provider
			*p.dst = k
			return cfg, true
		}
	}

	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	keys := map[string]struct {
		key    string
		envVar string
	}{
		"anthropic":  {c.Anthropic.APIKey, "CARPICK_ANTHROPIC_API_KEY"},
		"openai":     {c.OpenAI.APIKey, "CARPICK_OPENAI_API_KEY"},
		"gemini":     {c.Gemini.APIKey, "CARPICK_GEMINI_API_KEY"},
		"openrouter": {c.OpenRouter.APIKey, "CARPICK_OPENROUTER_API_KEY"},
	}

	if c.Provider == "mock" {
		return nil
	}
	want, ok := keys[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if want.key == "" {
		return fmt.Errorf("%s is required for the %s provider", want.envVar, c.Provider)
	}
	return nil
}
