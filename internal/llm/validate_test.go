package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

// spotterSchema mirrors the shape of the fact schema the quiz sends:
// required strings plus a constrained extra.
func spotterSchema() *Schema {
	return &Schema{
		Name:        "spotter-card",
		Description: "One car, one era, one badge tier",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"model": map[string]any{"type": "string"},
				"year":  map[string]any{"type": "integer", "minimum": 0},
				"trim":  map[string]any{"type": "string", "enum": []any{"GT", "LX", "SE"}},
			},
			"required": []any{"model", "year"},
		},
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"complete payload", `{"model":"Mustang","year":1967,"trim":"GT"}`, false},
		{"optional field omitted", `{"model":"Civic","year":1999}`, false},
		{"missing required field", `{"model":"Corolla"}`, true},
		{"year as prose", `{"model":"Supra","year":"ninety-four"}`, true},
		{"trim outside enum", `{"model":"Accord","year":2003,"trim":"XX"}`, true},
		{"not JSON at all", `{not json}`, true},
		{"empty payload", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(spotterSchema(), json.RawMessage(tt.payload))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("payload should have been rejected")
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
		})
	}
}

// A nil schema means the caller wanted freeform text; nothing to check.
func TestValidateJSON_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("nil schema must accept anything, got: %v", err)
	}
}

func TestValidateJSON_NestedDefinitions(t *testing.T) {
	schema := &Schema{
		Name:        "garage-entry",
		Description: "A car and the years it shipped",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"car": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"make": map[string]any{"type": "string"},
					},
					"required": []any{"make"},
				},
				"years": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"car", "years"},
		},
	}

	good := json.RawMessage(`{"car":{"make":"Mazda"},"years":[1992,1993,1994]}`)
	if err := ValidateJSON(schema, good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := json.RawMessage(`{"car":{"make":"Mazda"},"years":["not","ints"]}`)
	if err := ValidateJSON(schema, bad); err == nil {
		t.Fatal("string years should have been rejected")
	}
}

// The compiled form is cached by schema name; a second validation with
// the same name must still enforce the definition.
func TestValidateJSON_ReusesCompiledSchema(t *testing.T) {
	s := spotterSchema()
	if err := ValidateJSON(s, json.RawMessage(`{"model":"NSX","year":1991}`)); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if err := ValidateJSON(s, json.RawMessage(`{"model":"NSX"}`)); err == nil {
		t.Fatal("cached schema must still reject incomplete payloads")
	}
}
