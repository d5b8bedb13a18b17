package server

import (
	"sync"

	"go.uber.org/zap"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/lexicon"
)

// Library holds the live car index and lexicon behind a lock so admin
// rebuilds and lexicon reloads can swap them while rounds are served.
type Library struct {
	dataDir   string
	indexPath string
	log       *zap.Logger

	mu    sync.RWMutex
	lex   *lexicon.Lexicon
	index *catalog.Index
}

// NewLibrary creates a Library around an already-loaded index.
func NewLibrary(dataDir, indexPath string, lex *lexicon.Lexicon, index *catalog.Index, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{
		dataDir:   dataDir,
		indexPath: indexPath,
		log:       log,
		lex:       lex,
		index:     index,
	}
}

// Index returns the current index. Callers must not mutate it.
func (l *Library) Index() *catalog.Index {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.index
}

// Lexicon returns the current lexicon.
func (l *Library) Lexicon() *lexicon.Lexicon {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lex
}

// Rebuild rebuilds the index from the data directory and swaps it in.
// With force set, the cache is ignored and rewritten.
func (l *Library) Rebuild(force bool) (*catalog.Index, error) {
	l.mu.RLock()
	lex := l.lex
	l.mu.RUnlock()

	builder := catalog.NewBuilder(lex, l.log)
	ix, err := builder.LoadOrBuild(l.dataDir, l.indexPath, force)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.index = ix
	l.mu.Unlock()

	l.log.Info("index swapped",
		zap.Int("records", len(ix.Records)),
		zap.Int("misses", ix.Misses))
	return ix, nil
}

// SetLexicon swaps the lexicon and rebuilds the index against it. The
// lexicon version is part of the cache signature, so an alias change
// triggers a real rescan.
func (l *Library) SetLexicon(lex *lexicon.Lexicon) error {
	l.mu.Lock()
	l.lex = lex
	l.mu.Unlock()

	_, err := l.Rebuild(false)
	return err
}
