package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/moteboxai/agent-memory-tools/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driven"
)

// dateLayout is how calendar dates are stored; TEXT in this format sorts
// chronologically.
const dateLayout = "2006-01-02"

// Ensure Store implements the interface.
var _ driven.TextIndex = (*Store)(nil)

// Store is the SQLite-backed text index. Documents live in a plain table
// keyed by path; the searchable representation lives in an FTS5 table kept
// in step within the same transaction, so a reader never observes a
// partially-updated record. WAL mode lets readers proceed during a write.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the index database at dbPath and applies
// pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("%w: creating index directory: %w", domain.ErrStoreUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening index: %w", domain.ErrStoreUnavailable, err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrStoreUnavailable, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Upsert inserts or replaces a document by path. The documents row and the
// FTS row are written in one transaction.
func (s *Store) Upsert(ctx context.Context, doc domain.Document) error {
	if doc.Path == "" {
		return fmt.Errorf("%w: document path is required", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	tags := strings.Join(doc.Tags, " ")

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (path, title, date, tags, body, excerpt, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			tags = excluded.tags,
			body = excluded.body,
			excerpt = excluded.excerpt,
			indexed_at = excluded.indexed_at
	`, doc.Path, doc.Title, doc.Date.Format(dateLayout), tags, doc.Body, doc.Excerpt, doc.IndexedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents_fts WHERE path = ?", doc.Path); err != nil {
		return fmt.Errorf("clearing search row: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents_fts (path, title, body, tags)
		VALUES (?, ?, ?, ?)
	`, doc.Path, doc.Title, doc.Body, tags)
	if err != nil {
		return fmt.Errorf("saving search row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// Remove deletes a record if present. Removing an unknown path is a no-op.
func (s *Store) Remove(ctx context.Context, path string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents_fts WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting search row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing remove: %w", err)
	}
	return nil
}

// SearchByKeyword performs a full-text match over title, body and tags.
// Every term must appear (FTS5 implicit AND) and terms match by prefix.
// Results are ranked best-first by BM25, ties broken by most-recent date.
// An empty query returns no rows.
func (s *Store) SearchByKeyword(ctx context.Context, query string, limit int) ([]driven.ScoredDocument, error) {
	match := matchExpression(query)
	if match == "" {
		return []driven.ScoredDocument{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.path, d.title, d.date, d.tags, d.body, d.excerpt, d.indexed_at,
		       -bm25(documents_fts) AS score
		FROM documents_fts
		JOIN documents d ON d.path = documents_fts.path
		WHERE documents_fts MATCH ?
		ORDER BY bm25(documents_fts), d.date DESC, d.path
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", query, err)
	}
	defer rows.Close()

	var results []driven.ScoredDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var score float64
		if err := scanDocument(rows, &doc, &score); err != nil {
			return nil, err
		}
		results = append(results, driven.ScoredDocument{Document: doc, Score: score})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}

// QueryByDateRange returns documents with from <= date <= to, ascending by
// date then path.
func (s *Store) QueryByDateRange(ctx context.Context, from, to time.Time) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, title, date, tags, body, excerpt, indexed_at
		FROM documents
		WHERE date >= ? AND date <= ?
		ORDER BY date, path
	`, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		if err := scanDocument(rows, &doc, nil); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// GetByPath retrieves a document by path, or domain.ErrNotFound.
func (s *Store) GetByPath(ctx context.Context, path string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, title, date, tags, body, excerpt, indexed_at
		FROM documents WHERE path = ?
	`, path)

	var doc domain.Document
	var dateStr string
	var indexedAt sql.NullTime
	err := row.Scan(&doc.Path, &doc.Title, &dateStr, &tagsScanner{&doc.Tags}, &doc.Body, &doc.Excerpt, &indexedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing stored date %q: %w", dateStr, err)
	}
	if indexedAt.Valid {
		doc.IndexedAt = indexedAt.Time
	}
	return &doc, nil
}

// ListPaths returns every indexed path.
func (s *Store) ListPaths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path FROM documents ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("querying paths: %w", err)
	}
	defer rows.Close()

	var paths []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning path: %w", err)
		}
		paths = append(paths, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating paths: %w", err)
	}
	return paths, nil
}

// matchExpression builds an FTS5 match string from a free-form query:
// each whitespace-separated term becomes a quoted prefix token, and FTS5's
// implicit AND requires all of them to appear.
func matchExpression(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		t = strings.ReplaceAll(t, `"`, `""`)
		quoted[i] = `"` + t + `"*`
	}
	return strings.Join(quoted, " ")
}

// scanDocument scans a document row; score may be nil when the query
// carries no relevance column.
func scanDocument(rows *sql.Rows, doc *domain.Document, score *float64) error {
	var dateStr string
	var indexedAt sql.NullTime

	dest := []any{&doc.Path, &doc.Title, &dateStr, &tagsScanner{&doc.Tags}, &doc.Body, &doc.Excerpt, &indexedAt}
	if score != nil {
		dest = append(dest, score)
	}
	if err := rows.Scan(dest...); err != nil {
		return fmt.Errorf("scanning document: %w", err)
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return fmt.Errorf("parsing stored date %q: %w", dateStr, err)
	}
	doc.Date = date
	if indexedAt.Valid {
		doc.IndexedAt = indexedAt.Time
	}
	return nil
}

// tagsScanner splits the space-joined tags column back into a slice.
type tagsScanner struct {
	tags *[]string
}

func (t *tagsScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t.tags = nil
	case string:
		*t.tags = fieldsOrNil(v)
	case []byte:
		*t.tags = fieldsOrNil(string(v))
	default:
		return fmt.Errorf("unexpected tags column type %T", src)
	}
	return nil
}

func fieldsOrNil(s string) []string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil
	}
	return f
}
