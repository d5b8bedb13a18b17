package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/carpick/carpick/internal/lexicon"
)

// imageExts are the file extensions the builder considers.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Builder walks a data directory and parses image filenames into an Index.
type Builder struct {
	lex *lexicon.Lexicon
	log *zap.Logger
}

// NewBuilder creates a Builder. A nil logger defaults to a no-op logger.
func NewBuilder(lex *lexicon.Lexicon, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{lex: lex, log: log}
}

// Build walks every image file under dataDir in lexical order and parses
// each filename. Files that fail to parse are counted as misses and logged
// at debug level; a miss is never an error. Build fails only when the data
// directory itself is unusable.
func (b *Builder) Build(dataDir string) (*Index, error) {
	if _, err := os.Stat(dataDir); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dataDir, err)
	}

	ix := &Index{}
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

		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}
		rec, ok := Parse(rel, b.lex)
		if !ok {
			ix.Misses++
			b.log.Debug("failed to parse car metadata", zap.String("file", filepath.Base(path)))
			return nil
		}
		ix.Records = append(ix.Records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dataDir, err)
	}

	b.log.Info("built car index",
		zap.String("data_dir", dataDir),
		zap.Int("records", len(ix.Records)),
		zap.Int("misses", ix.Misses))
	return ix, nil
}
