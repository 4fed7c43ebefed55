package driving

import (
	"context"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// Indexer runs bulk indexing passes over the memory directory.
type Indexer interface {
	// Reindex walks the source, upserts every readable file and prunes
	// index entries whose backing file is gone. Unreadable files are
	// counted and skipped; they never abort the pass.
	Reindex(ctx context.Context) (domain.IndexStats, error)

	// IndexFile re-indexes a single file by path. Used by watch mode.
	IndexFile(ctx context.Context, path string) error
}
