package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedDoc(path, title, date, body string) domain.Document {
	return domain.Document{
		Path:    path,
		Title:   title,
		Date:    day(date),
		Body:    body,
		Excerpt: body,
	}
}

// ==================== Search Tests ====================

func TestSearch_ReturnsCompactResults(t *testing.T) {
	index := newMockIndex()
	index.docs["memory/a.md"] = seedDoc("memory/a.md", "Memory Notes", "2025-01-15",
		"memory systems and compression")

	svc := NewSearchService(index)
	results, err := svc.Search(context.Background(), "memory", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "memory/a.md", results[0].Path)
	assert.Equal(t, "Memory Notes", results[0].Title)
	assert.Equal(t, day("2025-01-15"), results[0].Date)
	assert.Equal(t, "memory systems and compression", results[0].Excerpt)
	assert.Positive(t, results[0].Score)
}

func TestSearch_EmptyQueryReturnsNoResults(t *testing.T) {
	index := newMockIndex()
	index.docs["memory/a.md"] = seedDoc("memory/a.md", "A", "2025-01-15", "anything")

	svc := NewSearchService(index)

	results, err := svc.Search(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_InvalidLimit(t *testing.T) {
	svc := NewSearchService(newMockIndex())

	_, err := svc.Search(context.Background(), "memory", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Search(context.Background(), "memory", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_NoMatchesIsEmptyNotError(t *testing.T) {
	index := newMockIndex()
	index.docs["memory/a.md"] = seedDoc("memory/a.md", "A", "2025-01-15", "something else")

	svc := NewSearchService(index)
	results, err := svc.Search(context.Background(), "nonexistent", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_IndexErrorIsWrapped(t *testing.T) {
	index := newMockIndex()
	index.searchErr = errors.New("disk on fire")

	svc := NewSearchService(index)
	_, err := svc.Search(context.Background(), "memory", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

// ==================== Timeline Tests ====================

func TestTimeline_WindowOrderingAndPositions(t *testing.T) {
	index := newMockIndex()
	index.docs["memory/before.md"] = seedDoc("memory/before.md", "Before", "2025-01-13", "x")
	index.docs["memory/anchor.md"] = seedDoc("memory/anchor.md", "Anchor", "2025-01-15", "x")
	index.docs["memory/after.md"] = seedDoc("memory/after.md", "After", "2025-01-17", "x")
	index.docs["memory/outside.md"] = seedDoc("memory/outside.md", "Outside", "2025-01-25", "x")

	svc := NewSearchService(index)
	entries, err := svc.Timeline(context.Background(), day("2025-01-15"), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "memory/before.md", entries[0].Path)
	assert.Equal(t, -2, entries[0].Position)
	assert.Equal(t, "memory/anchor.md", entries[1].Path)
	assert.Equal(t, 0, entries[1].Position)
	assert.Equal(t, "memory/after.md", entries[2].Path)
	assert.Equal(t, 2, entries[2].Position)
}

func TestTimeline_NeighbourLinks(t *testing.T) {
	index := newMockIndex()
	index.docs["memory/a.md"] = seedDoc("memory/a.md", "A", "2025-01-14", "x")
	index.docs["memory/b.md"] = seedDoc("memory/b.md", "B", "2025-01-15", "x")
	index.docs["memory/c.md"] = seedDoc("memory/c.md", "C", "2025-01-16", "x")

	svc := NewSearchService(index)
	entries, err := svc.Timeline(context.Background(), day("2025-01-15"), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Empty(t, entries[0].PrevPath)
	assert.Equal(t, "memory/b.md", entries[0].NextPath)
	assert.Equal(t, "memory/a.md", entries[1].PrevPath)
	assert.Equal(t, "memory/c.md", entries[1].NextPath)
	assert.Equal(t, "memory/b.md", entries[2].PrevPath)
	assert.Empty(t, entries[2].NextPath)
}

func TestTimeline_NoEntryOnAnchorDate(t *testing.T) {
	index := newMockIndex()
	index.docs["memory/a.md"] = seedDoc("memory/a.md", "A", "2025-01-13", "x")
	index.docs["memory/b.md"] = seedDoc("memory/b.md", "B", "2025-01-17", "x")

	svc := NewSearchService(index)
	entries, err := svc.Timeline(context.Background(), day("2025-01-15"), 3)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, -2, entries[0].Position)
	assert.Equal(t, 2, entries[1].Position)
}

func TestTimeline_ZeroWindowUsesDefault(t *testing.T) {
	index := newMockIndex()
	index.docs["memory/edge.md"] = seedDoc("memory/edge.md", "Edge", "2025-01-12", "x")

	svc := NewSearchService(index)
	// 2025-01-12 is exactly DefaultWindowDays before the anchor
	entries, err := svc.Timeline(context.Background(), day("2025-01-15"), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -DefaultWindowDays, entries[0].Position)
}

func TestTimeline_NegativeWindow(t *testing.T) {
	svc := NewSearchService(newMockIndex())

	_, err := svc.Timeline(context.Background(), day("2025-01-15"), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTimeline_ZeroAnchor(t *testing.T) {
	svc := NewSearchService(newMockIndex())

	_, err := svc.Timeline(context.Background(), time.Time{}, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTimeline_EmptyWindow(t *testing.T) {
	svc := NewSearchService(newMockIndex())

	entries, err := svc.Timeline(context.Background(), day("2025-01-15"), 3)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ==================== Get Tests ====================

func TestGet_ReturnsFullDocument(t *testing.T) {
	index := newMockIndex()
	index.docs["memory/a.md"] = seedDoc("memory/a.md", "A", "2025-01-15", "the full body text")

	svc := NewSearchService(index)
	doc, err := svc.Get(context.Background(), "memory/a.md")
	require.NoError(t, err)
	assert.Equal(t, "the full body text", doc.Body)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewSearchService(newMockIndex())

	_, err := svc.Get(context.Background(), "memory/missing.md")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_EmptyPath(t *testing.T) {
	svc := NewSearchService(newMockIndex())

	_, err := svc.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
