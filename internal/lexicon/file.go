package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// artifactDoc is the persisted JSON shape of the lexicon.
type artifactDoc struct {
	Makes map[string][]string `json:"makes"`
}

// artifactSchema constrains the lexicon artifact: a "makes" object whose
// values are arrays of strings.
var artifactSchema = map[string]any{
	"type":     "object",
	"required": []any{"makes"},
	"properties": map[string]any{
		"makes": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledArtifactSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := json.Marshal(artifactSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://lexicon.json", parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://lexicon.json")
	})
	return compiledSchema, schemaErr
}

// Load reads and validates a lexicon artifact. An artifact with an empty or
// missing makes table yields the seed lexicon, matching Ensure's behavior
// for a missing file.
func Load(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	schema, err := compiledArtifactSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("invalid lexicon %s: %w", path, err)
	}

	var doc artifactDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode lexicon %s: %w", path, err)
	}
	if len(doc.Makes) == 0 {
		return Default(), nil
	}
	return New(doc.Makes), nil
}

// Save writes the lexicon artifact atomically (temp file + rename) so a
// concurrent reader never observes a partial document.
func (l *Lexicon) Save(path string) error {
	doc := artifactDoc{Makes: l.Makes()}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lexicon: %w", err)
	}
	raw = append(raw, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create lexicon dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".lexicon-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Ensure loads the artifact at path, seeding it with the built-in table
// when it does not exist yet.
func Ensure(path string) (*Lexicon, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		l := Default()
		if err := l.Save(path); err != nil {
			return nil, fmt.Errorf("seed lexicon: %w", err)
		}
		return l, nil
	}
	return Load(path)
}
