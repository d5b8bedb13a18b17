package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas by name. carpick only has a
// handful of schemas, so the cache never needs eviction.
var compiledSchemas = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: make(map[string]*jsonschema.Schema)}

// ValidateJSON checks raw model output against schema. A nil schema
// validates everything. Failures come back as *ErrInvalidResponse with
// the offending payload attached.
//
// Providers call this on every schema-constrained completion; the facts
// service calls it again on whatever provider it was handed, so a mock
// or a misbehaving backend can't smuggle an empty payload through.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("not valid JSON: %w", err),
		}
	}

	compiled, err := compile(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(payload); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema %q: %w", schema.Name, err),
		}
	}
	return nil
}

// compile returns the cached compiled form of schema, compiling it on
// first use.
func compile(schema *Schema) (*jsonschema.Schema, error) {
	compiledSchemas.Lock()
	defer compiledSchemas.Unlock()

	if c, ok := compiledSchemas.byName[schema.Name]; ok {
		return c, nil
	}

	// The compiler wants the definition as a decoded JSON value, not a
	// Go map with arbitrary concrete types. Round-trip through encoding
	// to normalize it.
	encoded, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(encoded, &def); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := compiler.AddResource(url, def); err != nil {
		return nil, err
	}
	c, err := compiler.Compile(url)
	if err != nil {
		return nil, err
	}

	compiledSchemas.byName[schema.Name] = c
	return c, nil
}
