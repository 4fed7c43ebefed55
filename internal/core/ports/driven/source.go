package driven

import (
	"context"
	"time"
)

// RawFile is one readable source file discovered by a MemorySource.
type RawFile struct {
	// Path is the file's location on disk.
	Path string

	// Content is the raw file content.
	Content []byte

	// ModTime is the file's last modification time, used as the date
	// fallback when no date appears in the path.
	ModTime time.Time
}

// FatalScanError wraps an error that aborted a scan, such as an unreadable
// root directory. Errors on the scan channel that are not fatal are
// per-file skips.
type FatalScanError struct {
	Err error
}

func (e *FatalScanError) Error() string {
	return e.Err.Error()
}

func (e *FatalScanError) Unwrap() error {
	return e.Err
}

// MemorySource enumerates the markdown memory files to index.
// The filesystem adapter implements it; traversal mechanics stay out of
// the core services.
type MemorySource interface {
	// Scan streams readable files on the first channel and errors on the
	// second. Both channels are closed when the walk finishes. A failed
	// file must not stop the walk; an error that did stop it (an
	// unreadable root) is wrapped in FatalScanError.
	Scan(ctx context.Context) (<-chan RawFile, <-chan error)

	// Watch streams the paths of files that change after the call,
	// until the context is cancelled.
	Watch(ctx context.Context) (<-chan string, error)
}
