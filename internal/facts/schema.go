package facts

import "github.com/carpick/carpick/internal/llm"

// FactSchema defines the JSON schema for car fact generation.
var FactSchema = &llm.Schema{
	Name:        "car-fact",
	Description: "A short trivia fact about a specific production car",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "Punchy one-line hook for the fact (at most 12 words)",
			},
			"detail": map[string]any{
				"type":        "string",
				"description": "The fact itself, 2-3 sentences, specific to this model year",
			},
		},
		"required":             []any{"headline", "detail"},
		"additionalProperties": false,
	},
}
