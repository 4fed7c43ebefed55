package mcp

import (
	"context"
	"time"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	entries  []domain.TimelineEntry
	document *domain.Document
	err      error

	lastQuery  string
	lastLimit  int
	lastAnchor time.Time
	lastWindow int
	lastPath   string
}

func (m *mockSearchService) Search(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastLimit = limit
	return m.results, m.err
}

func (m *mockSearchService) Timeline(_ context.Context, anchor time.Time, windowDays int) ([]domain.TimelineEntry, error) {
	m.lastAnchor = anchor
	m.lastWindow = windowDays
	return m.entries, m.err
}

func (m *mockSearchService) Get(_ context.Context, path string) (*domain.Document, error) {
	m.lastPath = path
	if m.err != nil {
		return nil, m.err
	}
	return m.document, nil
}

// mockCaptureService is a mock implementation of driving.CaptureService.
type mockCaptureService struct {
	records []domain.InsightRecord
	err     error
}

func (m *mockCaptureService) Compress(_ context.Context, _, _ string) ([]domain.InsightRecord, error) {
	return m.records, m.err
}

func (m *mockCaptureService) CaptureDecision(_ context.Context, _, _ string) (*domain.InsightRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.records) > 0 {
		return &m.records[0], nil
	}
	return &domain.InsightRecord{}, nil
}

func (m *mockCaptureService) CaptureInsight(_ context.Context, _ string) (*domain.InsightRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.records) > 0 {
		return &m.records[0], nil
	}
	return &domain.InsightRecord{}, nil
}

func mustDay(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}
