package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "recall-test-*")
	require.NoError(t, err)

	store, err := NewStore(filepath.Join(tempDir, "search_index.db"))
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// testDoc builds a document with the given path, date and body.
func testDoc(path, title, date, body string, tags ...string) domain.Document {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		panic(err)
	}
	return domain.Document{
		Path:      path,
		Title:     title,
		Date:      d,
		Tags:      tags,
		Body:      body,
		Excerpt:   body,
		IndexedAt: time.Now().UTC(),
	}
}

// ==================== Store Creation Tests ====================

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "recall-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "search_index.db")
	store, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.db.Ping())
}

func TestNewStore_CreatesParentDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "recall-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "dir", "search_index.db")
	store, err := NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, dbPath)
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path/search_index.db")
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "recall-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "search_index.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations
	store, err = NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	var version int
	row := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations")
	require.NoError(t, row.Scan(&version))
	assert.Equal(t, 1, version)
}

// ==================== Upsert and Get Tests ====================

func TestUpsert_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := testDoc("memory/2025-01-15-sqlite.md", "SQLite Decision", "2025-01-15",
		"Decided to use SQLite FTS5 for indexing.", "tools", "decision")
	require.NoError(t, store.Upsert(ctx, doc))

	got, err := store.GetByPath(ctx, doc.Path)
	require.NoError(t, err)
	assert.Equal(t, doc.Path, got.Path)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, "2025-01-15", got.Date.Format(dateLayout))
	assert.Equal(t, []string{"tools", "decision"}, got.Tags)
	assert.Equal(t, doc.Body, got.Body)
	assert.Equal(t, doc.Excerpt, got.Excerpt)
}

func TestUpsert_ReplacesByPath(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := testDoc("memory/note.md", "First Title", "2025-01-01", "old body")
	require.NoError(t, store.Upsert(ctx, doc))

	doc.Title = "Second Title"
	doc.Body = "new body"
	require.NoError(t, store.Upsert(ctx, doc))

	got, err := store.GetByPath(ctx, doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "Second Title", got.Title)
	assert.Equal(t, "new body", got.Body)

	// Still exactly one record
	paths, err := store.ListPaths(ctx)
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	// The FTS side must reflect the new body, not the old
	results, err := store.SearchByKeyword(ctx, "new", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = store.SearchByKeyword(ctx, "old", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpsert_EmptyPath(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.Upsert(context.Background(), domain.Document{Title: "no path"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByPath_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetByPath(context.Background(), "memory/missing.md")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ==================== Remove Tests ====================

func TestRemove_DeletesDocument(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := testDoc("memory/note.md", "Note", "2025-02-01", "searchable body text")
	require.NoError(t, store.Upsert(ctx, doc))
	require.NoError(t, store.Remove(ctx, doc.Path))

	_, err := store.GetByPath(ctx, doc.Path)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The FTS row must be gone too
	results, err := store.SearchByKeyword(ctx, "searchable", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRemove_UnknownPathIsNoOp(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NoError(t, store.Remove(context.Background(), "memory/never-existed.md"))
}

// ==================== Search Tests ====================

func TestSearchByKeyword_AllTermsMustMatch(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("memory/a.md", "Memory Design", "2025-03-01",
		"memory compression uses progressive disclosure")))
	require.NoError(t, store.Upsert(ctx, testDoc("memory/b.md", "Unrelated", "2025-03-02",
		"memory only, nothing about the other term")))

	results, err := store.SearchByKeyword(ctx, "memory compression", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "memory/a.md", results[0].Document.Path)
	assert.Positive(t, results[0].Score)
}

func TestSearchByKeyword_PrefixMatching(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("memory/a.md", "Compression", "2025-03-01",
		"compressing sessions into records")))

	results, err := store.SearchByKeyword(ctx, "compress", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchByKeyword_MatchesTitleAndTags(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("memory/title.md", "Architecture Review", "2025-03-01",
		"body with no special words")))
	require.NoError(t, store.Upsert(ctx, testDoc("memory/tagged.md", "Plain", "2025-03-02",
		"another plain body", "philosophy")))

	results, err := store.SearchByKeyword(ctx, "architecture", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "memory/title.md", results[0].Document.Path)

	results, err = store.SearchByKeyword(ctx, "philosophy", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "memory/tagged.md", results[0].Document.Path)
}

func TestSearchByKeyword_EmptyQuery(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("memory/a.md", "A", "2025-03-01", "anything")))

	results, err := store.SearchByKeyword(ctx, "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchByKeyword_RespectsLimit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, p := range []string{"memory/a.md", "memory/b.md", "memory/c.md"} {
		require.NoError(t, store.Upsert(ctx, testDoc(p, "Note", "2025-03-01", "shared keyword here")))
	}

	results, err := store.SearchByKeyword(ctx, "shared", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchByKeyword_QuoteInQuery(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("memory/a.md", "A", "2025-03-01", "anything")))

	// Must not produce an FTS5 syntax error
	results, err := store.SearchByKeyword(ctx, `say "hello`, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// ==================== Date Range Tests ====================

func TestQueryByDateRange_InclusiveBoundsAscending(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("memory/jan10.md", "Before", "2025-01-10", "x")))
	require.NoError(t, store.Upsert(ctx, testDoc("memory/jan12.md", "Start", "2025-01-12", "x")))
	require.NoError(t, store.Upsert(ctx, testDoc("memory/jan14.md", "Middle", "2025-01-14", "x")))
	require.NoError(t, store.Upsert(ctx, testDoc("memory/jan16.md", "End", "2025-01-16", "x")))
	require.NoError(t, store.Upsert(ctx, testDoc("memory/jan18.md", "After", "2025-01-18", "x")))

	from, _ := time.Parse(dateLayout, "2025-01-12")
	to, _ := time.Parse(dateLayout, "2025-01-16")

	docs, err := store.QueryByDateRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "memory/jan12.md", docs[0].Path)
	assert.Equal(t, "memory/jan14.md", docs[1].Path)
	assert.Equal(t, "memory/jan16.md", docs[2].Path)
}

func TestQueryByDateRange_TiesBrokenByPath(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("memory/b.md", "B", "2025-01-12", "x")))
	require.NoError(t, store.Upsert(ctx, testDoc("memory/a.md", "A", "2025-01-12", "x")))

	from, _ := time.Parse(dateLayout, "2025-01-12")
	docs, err := store.QueryByDateRange(ctx, from, from)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "memory/a.md", docs[0].Path)
	assert.Equal(t, "memory/b.md", docs[1].Path)
}

// ==================== ListPaths Tests ====================

func TestListPaths(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	paths, err := store.ListPaths(ctx)
	require.NoError(t, err)
	assert.Empty(t, paths)

	require.NoError(t, store.Upsert(ctx, testDoc("memory/b.md", "B", "2025-01-01", "x")))
	require.NoError(t, store.Upsert(ctx, testDoc("memory/a.md", "A", "2025-01-02", "x")))

	paths, err = store.ListPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"memory/a.md", "memory/b.md"}, paths)
}

// ==================== Match Expression Tests ====================

func TestMatchExpression(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"single term", "memory", `"memory"*`},
		{"multiple terms", "memory compression", `"memory"* "compression"*`},
		{"embedded quote", `he said "hi`, `"he"* "said"* """hi"*`},
		{"fts operator neutralised", "a OR b", `"a"* "OR"* "b"*`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchExpression(tt.query))
		})
	}
}
