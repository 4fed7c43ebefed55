// Package filesystem walks a directory of markdown memory files and feeds
// them to the indexer. It also supports watching the directory for changes.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.MemorySource = (*Source)(nil)

// Source scans a root directory recursively for .md files. Dotfiles and
// dot-directories are skipped, as is the index database itself.
type Source struct {
	root string
}

// New creates a filesystem source rooted at the given directory.
func New(root string) *Source {
	return &Source{root: root}
}

// Root returns the scanned directory.
func (s *Source) Root() string {
	return s.root
}

// Scan walks the root and streams readable markdown files. Per-file read
// failures go to the error channel and do not stop the walk; an unreadable
// root aborts it and is reported as a driven.FatalScanError. Both channels
// are closed when the walk finishes.
func (s *Source) Scan(ctx context.Context) (<-chan driven.RawFile, <-chan error) {
	files := make(chan driven.RawFile)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		sendErr := func(err error) error {
			select {
			case errs <- err:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		walkErr := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == s.root {
					return fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, path, err)
				}
				return sendErr(fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, path, err))
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}

			name := d.Name()
			if d.IsDir() {
				if path != s.root && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !isMemoryFile(name) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return sendErr(fmt.Errorf("%w: stat %s: %w", domain.ErrSourceUnreadable, path, err))
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return sendErr(fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnreadable, path, err))
			}

			select {
			case files <- driven.RawFile{Path: path, Content: content, ModTime: info.ModTime()}:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})

		if walkErr != nil && ctx.Err() == nil {
			sendErr(&driven.FatalScanError{Err: walkErr}) //nolint:errcheck
		}
	}()

	return files, errs
}

// Watch streams the paths of markdown files created, modified, renamed or
// removed under the root until the context is cancelled.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the root and every existing subdirectory.
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable subtrees are skipped
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.root, err)
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New directories need their own watch.
				if ev.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						watcher.Add(ev.Name) //nolint:errcheck
						continue
					}
				}
				if !isMemoryFile(filepath.Base(ev.Name)) {
					continue
				}
				select {
				case changes <- ev.Name:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// isMemoryFile reports whether the name is an indexable markdown file.
func isMemoryFile(name string) bool {
	return strings.HasSuffix(name, ".md") && !strings.HasPrefix(name, ".")
}
