package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
)

// cacheSchemaVersion is bumped whenever the artifact layout changes; older
// artifacts then read as corrupt and trigger a rebuild.
const cacheSchemaVersion = 1

// cacheDoc is the persisted index artifact. It deliberately carries no
// timestamp: rebuilding an unchanged directory must produce byte-identical
// output.
type cacheDoc struct {
	Schema    int      `json:"schema"`
	Signature string   `json:"signature"`
	Lexicon   string   `json:"lexicon"`
	Records   []Record `json:"records"`
	Misses    int      `json:"misses"`
}

// cacheDocSchema validates the artifact before decoding. The year bounds
// here enforce the index invariant even against hand-edited caches.
var cacheDocSchema = map[string]any{
	"type":     "object",
	"required": []any{"schema", "signature", "lexicon", "records", "misses"},
	"properties": map[string]any{
		"schema":    map[string]any{"type": "integer", "minimum": 1},
		"signature": map[string]any{"type": "string", "minLength": 1},
		"lexicon":   map[string]any{"type": "string", "minLength": 1},
		"misses":    map[string]any{"type": "integer", "minimum": 0},
		"records": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"path", "make", "model", "year"},
				"properties": map[string]any{
					"path":  map[string]any{"type": "string", "minLength": 1},
					"make":  map[string]any{"type": "string", "minLength": 1},
					"model": map[string]any{"type": "string", "minLength": 1},
					"year": map[string]any{
						"type":    "integer",
						"minimum": MinYear,
						"maximum": MaxYear,
					},
				},
			},
		},
	},
}

var (
	cacheSchemaOnce sync.Once
	cacheSchema     *jsonschema.Schema
	cacheSchemaErr  error
)

func compiledCacheSchema() (*jsonschema.Schema, error) {
	cacheSchemaOnce.Do(func() {
		raw, err := json.Marshal(cacheDocSchema)
		if err != nil {
			cacheSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			cacheSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://cars_index.json", parsed); err != nil {
			cacheSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		cacheSchema, cacheSchemaErr = c.Compile("schema://cars_index.json")
	})
	return cacheSchema, cacheSchemaErr
}

// DirSignature hashes the state of every image file under dataDir (relative
// path, size, mtime). Any add, remove, rename, or content change yields a
// different signature, which is what keys the cache artifact.
func DirSignature(dataDir string) (string, error) {
	type entry struct {
		rel   string
		size  int64
		mtime int64
	}
	var entries []entry

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !imageExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}
		entries = append(entries, entry{
			rel:   filepath.ToSlash(rel),
			size:  info.Size(),
			mtime: info.ModTime().UnixNano(),
		})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("signature walk %s: %w", dataDir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })

	h := sha256.New()
	for _, e := range entries {
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", e.rel, e.size, e.mtime)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// LoadOrBuild returns the index for dataDir, reading the cache artifact at
// cachePath when it is fresh and rebuilding otherwise. A corrupt artifact
// never fails the call: it is logged and treated as a forced rebuild.
// Freshness requires both the directory signature and the lexicon version
// to match.
func (b *Builder) LoadOrBuild(dataDir, cachePath string, force bool) (*Index, error) {
	sig, err := DirSignature(dataDir)
	if err != nil {
		return nil, err
	}

	if !force {
		doc, err := readCache(cachePath)
		switch {
		case err == nil:
			if doc.Signature == sig && doc.Lexicon == b.lex.Version() {
				b.log.Debug("index cache hit",
					zap.String("cache", cachePath),
					zap.Int("records", len(doc.Records)))
				return &Index{Records: doc.Records, Misses: doc.Misses}, nil
			}
			b.log.Info("index cache stale, rebuilding", zap.String("cache", cachePath))
		case os.IsNotExist(err):
			// Cold start.
		default:
			b.log.Warn("index cache unusable, forcing rebuild", zap.Error(err))
		}
	}

	ix, err := b.Build(dataDir)
	if err != nil {
		return nil, err
	}
	if err := writeCache(cachePath, &cacheDoc{
		Schema:    cacheSchemaVersion,
		Signature: sig,
		Lexicon:   b.lex.Version(),
		Records:   ix.Records,
		Misses:    ix.Misses,
	}); err != nil {
		return nil, err
	}
	return ix, nil
}

// readCache loads and validates the artifact. Malformed content comes back
// as *ErrCacheCorrupt; a missing file comes back as the bare os error so
// callers can tell a cold start from corruption.
func readCache(path string) (*cacheDoc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, &ErrCacheCorrupt{Path: path, Reason: err}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ErrCacheCorrupt{Path: path, Reason: err}
	}
	schema, err := compiledCacheSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ErrCacheCorrupt{Path: path, Reason: err}
	}

	var doc cacheDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ErrCacheCorrupt{Path: path, Reason: err}
	}
	if doc.Schema != cacheSchemaVersion {
		return nil, &ErrCacheCorrupt{
			Path:   path,
			Reason: fmt.Errorf("schema version %d, want %d", doc.Schema, cacheSchemaVersion),
		}
	}
	return &doc, nil
}

// writeCache persists the artifact atomically (temp file + rename) so
// concurrent rebuilds never expose a partial document.
func writeCache(path string, doc *cacheDoc) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index cache: %w", err)
	}
	raw = append(raw, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cars_index-*")
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
