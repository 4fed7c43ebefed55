package cli

import (
	"context"
	"time"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// --- Mock implementations ---

// mockSearchService implements driving.SearchService with canned responses.
type mockSearchService struct {
	results  []domain.SearchResult
	entries  []domain.TimelineEntry
	document *domain.Document

	searchErr   error
	timelineErr error
	getErr      error
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockSearchService) Timeline(_ context.Context, _ time.Time, _ int) ([]domain.TimelineEntry, error) {
	if m.timelineErr != nil {
		return nil, m.timelineErr
	}
	return m.entries, nil
}

func (m *mockSearchService) Get(_ context.Context, _ string) (*domain.Document, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.document, nil
}

// mockIndexer implements driving.Indexer.
type mockIndexer struct {
	stats      domain.IndexStats
	reindexErr error
	indexed    []string
}

func (m *mockIndexer) Reindex(_ context.Context) (domain.IndexStats, error) {
	if m.reindexErr != nil {
		return domain.IndexStats{}, m.reindexErr
	}
	return m.stats, nil
}

func (m *mockIndexer) IndexFile(_ context.Context, path string) error {
	m.indexed = append(m.indexed, path)
	return nil
}

// mockCaptureService implements driving.CaptureService.
type mockCaptureService struct {
	records    []domain.InsightRecord
	compressEr error
}

func (m *mockCaptureService) Compress(_ context.Context, _, _ string) ([]domain.InsightRecord, error) {
	if m.compressEr != nil {
		return nil, m.compressEr
	}
	return m.records, nil
}

func (m *mockCaptureService) CaptureDecision(_ context.Context, text, rationale string) (*domain.InsightRecord, error) {
	body := "Decision: " + text
	if rationale != "" {
		body += "\n\nRationale: " + rationale
	}
	return &domain.InsightRecord{
		Category: domain.CategoryDecision,
		Document: domain.Document{Path: "capture://2025-01-01/decision-abcd1234", Body: body},
	}, nil
}

func (m *mockCaptureService) CaptureInsight(_ context.Context, text string) (*domain.InsightRecord, error) {
	return &domain.InsightRecord{
		Category: domain.CategoryInsight,
		Document: domain.Document{Path: "capture://2025-01-01/insight-abcd1234", Body: text},
	}, nil
}

// testDay parses a YYYY-MM-DD date for fixtures.
func testDay(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// setupTestServices wires mock services into the command tree and returns
// a cleanup function restoring the previous state.
func setupTestServices() func() {
	search := &mockSearchService{
		results: []domain.SearchResult{
			{
				Path:    "memory/2025-01-15-notes.md",
				Title:   "Session Notes",
				Date:    testDay("2025-01-15"),
				Excerpt: "decided to use sqlite",
				Tags:    []string{"decision", "tools"},
				Score:   1.5,
			},
		},
		entries: []domain.TimelineEntry{
			{
				Path:     "memory/2025-01-15-notes.md",
				Title:    "Session Notes",
				Date:     testDay("2025-01-15"),
				Excerpt:  "decided to use sqlite",
				Position: 0,
			},
		},
		document: &domain.Document{
			Path:  "memory/2025-01-15-notes.md",
			Title: "Session Notes",
			Date:  testDay("2025-01-15"),
			Tags:  []string{"decision"},
			Body:  "# Session Notes\n\ndecided to use sqlite",
		},
	}

	capture := &mockCaptureService{
		records: []domain.InsightRecord{
			{
				Category: domain.CategoryDecision,
				Document: domain.Document{Path: "capture://2025-01-01/decision-abcd1234"},
			},
			{
				Category: domain.CategorySummary,
				Document: domain.Document{Path: "capture://2025-01-01/summary-abcd1234"},
			},
		},
	}

	SetServices(Services{
		Search:    search,
		Indexer:   &mockIndexer{stats: domain.IndexStats{Indexed: 3, Skipped: 1, Pruned: 2}},
		Capture:   capture,
		Source:    nil,
		MemoryDir: "/mem",
	})

	return func() {
		SetServices(Services{})
	}
}
