package driven

import (
	"context"
	"time"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// TextIndex is the persistent full-text-searchable store of documents.
// Backed by SQLite FTS5. The storage engine is swappable: the search tiers
// only ever talk to this interface.
type TextIndex interface {
	// Upsert inserts or replaces a document by path. The stored record
	// and its full-text representation are updated atomically.
	Upsert(ctx context.Context, doc domain.Document) error

	// Remove deletes a record if present; removing an unknown path is
	// not an error.
	Remove(ctx context.Context, path string) error

	// SearchByKeyword performs a full-text match over title, body and
	// tags with multi-term AND semantics and prefix matching. Results
	// are ranked by relevance, ties broken by most-recent date first.
	// An empty query yields no results.
	SearchByKeyword(ctx context.Context, query string, limit int) ([]ScoredDocument, error)

	// QueryByDateRange returns documents with from <= date <= to,
	// ascending by date, then by path for stable same-date ordering.
	QueryByDateRange(ctx context.Context, from, to time.Time) ([]domain.Document, error)

	// GetByPath retrieves a document, or domain.ErrNotFound.
	GetByPath(ctx context.Context, path string) (*domain.Document, error)

	// ListPaths returns every indexed path. Used to prune entries whose
	// backing file has been removed.
	ListPaths(ctx context.Context) ([]string, error)

	// Close releases the backing store.
	Close() error
}

// ScoredDocument pairs a document with its relevance score.
type ScoredDocument struct {
	// Document is the matched document.
	Document domain.Document

	// Score is the text engine's relevance score; higher is better.
	Score float64
}
