package driving

import (
	"context"
	"time"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// SearchService resolves the three disclosure layers. Each tier is an
// independent read path: a caller may jump straight to Get if it already
// knows the path.
type SearchService interface {
	// Search is layer 1: compact keyword results, excerpt only. The
	// limit must be positive. No matches is an empty slice, not an error.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// Timeline is layer 2: chronological context around an anchor date.
	// A windowDays of zero uses the default window.
	Timeline(ctx context.Context, anchor time.Time, windowDays int) ([]domain.TimelineEntry, error)

	// Get is layer 3: the full document including body, or
	// domain.ErrNotFound. This is the only tier that returns body content.
	Get(ctx context.Context, path string) (*domain.Document, error)
}
