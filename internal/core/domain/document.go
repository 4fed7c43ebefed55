package domain

import (
	"strings"
	"time"
)

// SyntheticPathPrefix marks documents produced by session capture rather
// than by indexing a file on disk. Synthetic documents are never pruned
// during a re-index because no backing file exists for them.
const SyntheticPathPrefix = "capture://"

// Document is a unit of memory content. Path is the unique key: indexing
// the same path again replaces the prior record.
type Document struct {
	// Path is the source file path, or a capture:// path for documents
	// synthesized from conversation capture.
	Path string

	// Title is a short human label.
	Title string

	// Date is the calendar date associated with the content, extracted
	// from the path or defaulted to the file's modification time.
	Date time.Time

	// Tags are lowercase keyword strings, in first-occurrence order.
	Tags []string

	// Body is the full text content.
	Body string

	// Excerpt is a short derived snippet used for compact search results.
	Excerpt string

	// IndexedAt is when the document was last upserted.
	IndexedAt time.Time
}

// IsSynthetic reports whether the document was produced by session capture.
func (d Document) IsSynthetic() bool {
	return strings.HasPrefix(d.Path, SyntheticPathPrefix)
}

// Category classifies an insight record produced by session compression.
type Category string

// Insight record categories.
const (
	CategoryDecision Category = "decision"
	CategoryInsight  Category = "insight"
	CategoryAction   Category = "action"
	CategoryQuestion Category = "question"
	CategorySummary  Category = "summary"
)

// Valid reports whether the category is one of the known classes.
func (c Category) Valid() bool {
	switch c {
	case CategoryDecision, CategoryInsight, CategoryAction, CategoryQuestion, CategorySummary:
		return true
	}
	return false
}

// InsightRecord is a document synthesized from conversation text, carrying
// the category it was classified into. Each record is persisted as its own
// Document with the category added to its tags.
type InsightRecord struct {
	Document

	// Category is the matched insight class.
	Category Category
}
