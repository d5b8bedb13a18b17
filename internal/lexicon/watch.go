package lexicon

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the lexicon artifact when it changes on disk. Editors and
// atomic writers replace the file rather than appending, so the watcher
// monitors the parent directory and filters events for the artifact name.
type Watcher struct {
	path     string
	onReload func(*Lexicon)
	log      *zap.Logger

	fsw      *fsnotify.Watcher
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for the artifact at path. onReload is called
// with each successfully loaded replacement lexicon.
func NewWatcher(path string, onReload func(*Lexicon), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     path,
		onReload: onReload,
		log:      log,
		fsw:      fsw,
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs in a goroutine
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		// The run loop owns closing fsw, and it never started.
		_ = w.fsw.Close()
		return err
	}
	w.log.Info("watching lexicon artifact", zap.String("path", w.path))
	go w.run(ctx)
	return nil
}

// Stop halts the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer func() { _ = w.fsw.Close() }()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Debounce rapid save sequences into one reload.
			pending = time.After(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("lexicon watch error", zap.Error(err))
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	l, err := Load(w.path)
	if err != nil {
		w.log.Warn("lexicon reload failed, keeping previous table",
			zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("lexicon reloaded",
		zap.String("path", w.path), zap.String("version", l.Version()))
	w.onReload(l)
}
