package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driven"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driving"
	"github.com/moteboxai/agent-memory-tools/internal/logger"
)

// DefaultWindowDays is the timeline half-window applied when the caller
// passes zero.
const DefaultWindowDays = 3

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService resolves the three disclosure layers on top of the text
// index. All three tiers are pure reads.
type SearchService struct {
	index driven.TextIndex
}

// NewSearchService creates a search service over the given index.
func NewSearchService(index driven.TextIndex) *SearchService {
	return &SearchService{index: index}
}

// Search is layer 1: compact keyword matches. The body is never included;
// callers escalate to Get for content. An empty query returns no results
// rather than matching everything.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidInput, limit)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	logger.Section("Search")
	logger.Debug("Query: %q, limit: %d", query, limit)

	hits, err := s.index.SearchByKeyword(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]domain.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = domain.SearchResult{
			Path:    hit.Document.Path,
			Title:   hit.Document.Title,
			Date:    hit.Document.Date,
			Excerpt: hit.Document.Excerpt,
			Tags:    hit.Document.Tags,
			Score:   hit.Score,
		}
	}

	logger.Info("Search %q: %d results", query, len(results))
	return results, nil
}

// Timeline is layer 2: documents within [anchor-window, anchor+window],
// ascending by date, each entry linked to its neighbours and positioned in
// days relative to the anchor. Unlike layer 1 this gives chronological
// context, not keyword relevance: neighbours are returned even when
// nothing falls exactly on the anchor date.
func (s *SearchService) Timeline(ctx context.Context, anchor time.Time, windowDays int) ([]domain.TimelineEntry, error) {
	if anchor.IsZero() {
		return nil, fmt.Errorf("%w: anchor date is required", domain.ErrInvalidInput)
	}
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: window must not be negative, got %d", domain.ErrInvalidInput, windowDays)
	}
	if windowDays == 0 {
		windowDays = DefaultWindowDays
	}

	day := truncateToDay(anchor)
	from := day.AddDate(0, 0, -windowDays)
	to := day.AddDate(0, 0, windowDays)

	logger.Section("Timeline")
	logger.Debug("Anchor: %s, window: ±%d days", day.Format("2006-01-02"), windowDays)

	docs, err := s.index.QueryByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("timeline around %s: %w", day.Format("2006-01-02"), err)
	}

	entries := make([]domain.TimelineEntry, len(docs))
	for i, doc := range docs {
		entries[i] = domain.TimelineEntry{
			Path:     doc.Path,
			Title:    doc.Title,
			Date:     doc.Date,
			Excerpt:  doc.Excerpt,
			Position: int(doc.Date.Sub(day).Hours() / 24),
		}
		if i > 0 {
			entries[i].PrevPath = docs[i-1].Path
			entries[i-1].NextPath = doc.Path
		}
	}

	logger.Info("Timeline: %d entries", len(entries))
	return entries, nil
}

// Get is layer 3: the full document, body included. This is the expensive,
// explicit opt-in step.
func (s *SearchService) Get(ctx context.Context, path string) (*domain.Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	doc, err := s.index.GetByPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return doc, nil
}
