package catalog

import "fmt"

// ErrCacheCorrupt indicates the index cache artifact could not be read,
// parsed, or validated. LoadOrBuild absorbs it by forcing a full rebuild;
// it is exposed so tests and diagnostics can distinguish corruption from a
// plain stale cache.
type ErrCacheCorrupt struct {
	Path   string
	Reason error
}

func (e *ErrCacheCorrupt) Error() string {
	return fmt.Sprintf("corrupt index cache %s: %v", e.Path, e.Reason)
}

func (e *ErrCacheCorrupt) Unwrap() error {
	return e.Reason
}
