package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driven"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driving"
	"github.com/moteboxai/agent-memory-tools/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.Indexer = (*IndexerService)(nil)

// IndexerService walks the memory source and keeps the text index in step
// with it. Indexing is idempotent and proceeds file by file: a crash
// mid-pass leaves already-upserted documents intact, and re-running heals.
type IndexerService struct {
	source    driven.MemorySource
	index     driven.TextIndex
	extractor *Extractor
	memoryDir string
}

// NewIndexerService creates an indexer over the given source and index.
// memoryDir scopes pruning: only stale entries under it are removed.
func NewIndexerService(
	source driven.MemorySource,
	index driven.TextIndex,
	extractor *Extractor,
	memoryDir string,
) *IndexerService {
	return &IndexerService{
		source:    source,
		index:     index,
		extractor: extractor,
		memoryDir: memoryDir,
	}
}

// Reindex performs a full pass: every readable file is extracted and
// upserted, unreadable files are logged and skipped, and entries whose
// backing file vanished are pruned. Per-file failures never abort the
// pass; a failed walk (unreadable root) does, and nothing is pruned then.
func (s *IndexerService) Reindex(ctx context.Context) (domain.IndexStats, error) {
	logger.Section("Indexing")
	logger.Info("Walking %s", s.memoryDir)

	var stats domain.IndexStats
	var scanErr error
	seen := make(map[string]bool)

	files, errs := s.source.Scan(ctx)
	for files != nil || errs != nil {
		select {
		case f, ok := <-files:
			if !ok {
				files = nil
				continue
			}
			doc := s.extractor.Extract(f.Path, f.Content, f.ModTime)
			if err := s.index.Upsert(ctx, doc); err != nil {
				return stats, fmt.Errorf("upsert %s: %w", f.Path, err)
			}
			seen[f.Path] = true
			stats.Indexed++
			logger.Debug("Indexed %s (date=%s, tags=%d)", f.Path, doc.Date.Format("2006-01-02"), len(doc.Tags))

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			var fatal *driven.FatalScanError
			if errors.As(err, &fatal) {
				scanErr = fatal.Err
				continue
			}
			stats.Skipped++
			logger.Warn("Skipping unreadable file: %v", err)

		case <-ctx.Done():
			return stats, ctx.Err()
		}
	}

	// An aborted walk means absence of a file proves nothing; pruning on
	// it would wipe the index.
	if scanErr != nil {
		return stats, fmt.Errorf("scanning %s: %w", s.memoryDir, scanErr)
	}

	pruned, err := s.prune(ctx, seen)
	if err != nil {
		return stats, err
	}
	stats.Pruned = pruned

	logger.Info("Indexing complete: %d indexed, %d skipped, %d pruned",
		stats.Indexed, stats.Skipped, stats.Pruned)
	return stats, nil
}

// IndexFile re-indexes a single file. A file that has been deleted is
// removed from the index instead.
func (s *IndexerService) IndexFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.index.Remove(ctx, path)
		}
		return fmt.Errorf("%w: stat %s: %w", domain.ErrSourceUnreadable, path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnreadable, path, err)
	}

	doc := s.extractor.Extract(path, content, info.ModTime())
	if err := s.index.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("upsert %s: %w", path, err)
	}
	return nil
}

// prune removes index entries under the memory directory whose backing
// file was not seen during the walk. Synthetic capture documents are left
// alone: they never have a backing file.
func (s *IndexerService) prune(ctx context.Context, seen map[string]bool) (int, error) {
	paths, err := s.index.ListPaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("list indexed paths: %w", err)
	}

	pruned := 0
	for _, p := range paths {
		if seen[p] || strings.HasPrefix(p, domain.SyntheticPathPrefix) {
			continue
		}
		if !strings.HasPrefix(p, s.memoryDir) {
			continue
		}
		if err := s.index.Remove(ctx, p); err != nil {
			return pruned, fmt.Errorf("prune %s: %w", p, err)
		}
		pruned++
		logger.Debug("Pruned stale entry %s", p)
	}
	return pruned, nil
}
