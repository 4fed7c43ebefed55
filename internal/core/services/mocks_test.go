package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockIndex implements driven.TextIndex with an in-memory map.
type mockIndex struct {
	docs map[string]domain.Document

	upsertErr error
	removeErr error
	searchErr error
	queryErr  error
	listErr   error
}

func newMockIndex() *mockIndex {
	return &mockIndex{docs: make(map[string]domain.Document)}
}

func (m *mockIndex) Upsert(_ context.Context, doc domain.Document) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.docs[doc.Path] = doc
	return nil
}

func (m *mockIndex) Remove(_ context.Context, path string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.docs, path)
	return nil
}

// SearchByKeyword matches documents whose body, title or tags contain
// every term as a substring. Score is the number of body occurrences of
// the first term, which is enough for ranking assertions.
func (m *mockIndex) SearchByKeyword(_ context.Context, query string, limit int) ([]driven.ScoredDocument, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}

	terms := strings.Fields(strings.ToLower(query))
	var hits []driven.ScoredDocument
	for _, doc := range m.docs {
		haystack := strings.ToLower(doc.Title + " " + doc.Body + " " + strings.Join(doc.Tags, " "))
		matched := true
		for _, t := range terms {
			if !strings.Contains(haystack, t) {
				matched = false
				break
			}
		}
		if !matched || len(terms) == 0 {
			continue
		}
		score := float64(strings.Count(haystack, terms[0]))
		hits = append(hits, driven.ScoredDocument{Document: doc, Score: score})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Document.Path < hits[j].Document.Path
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *mockIndex) QueryByDateRange(_ context.Context, from, to time.Time) ([]domain.Document, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}

	var docs []domain.Document
	for _, doc := range m.docs {
		if doc.Date.Before(from) || doc.Date.After(to) {
			continue
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].Date.Equal(docs[j].Date) {
			return docs[i].Date.Before(docs[j].Date)
		}
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}

func (m *mockIndex) GetByPath(_ context.Context, path string) (*domain.Document, error) {
	doc, ok := m.docs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *mockIndex) ListPaths(_ context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	paths := make([]string, 0, len(m.docs))
	for p := range m.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *mockIndex) Close() error {
	return nil
}

// mockSource implements driven.MemorySource from fixed slices.
type mockSource struct {
	files []driven.RawFile
	errs  []error

	watch   chan string
	watchEr error
}

func (m *mockSource) Scan(_ context.Context) (<-chan driven.RawFile, <-chan error) {
	files := make(chan driven.RawFile, len(m.files))
	errs := make(chan error, len(m.errs))
	for _, f := range m.files {
		files <- f
	}
	for _, e := range m.errs {
		errs <- e
	}
	close(files)
	close(errs)
	return files, errs
}

func (m *mockSource) Watch(_ context.Context) (<-chan string, error) {
	if m.watchEr != nil {
		return nil, m.watchEr
	}
	return m.watch, nil
}
