package domain

import "time"

// SearchResult is a compact search hit: metadata and excerpt only,
// never the full body. Callers escalate to Get for body content.
type SearchResult struct {
	// Path identifies the matched document.
	Path string

	// Title is the document title.
	Title string

	// Date is the document's calendar date.
	Date time.Time

	// Excerpt is the short snippet for display.
	Excerpt string

	// Tags are the document's tags.
	Tags []string

	// Score is the text engine's relevance score; higher is better.
	Score float64
}

// TimelineEntry is one document within a chronological window, linked to
// its neighbours in the returned sequence.
type TimelineEntry struct {
	// Path identifies the document.
	Path string

	// Title is the document title.
	Title string

	// Date is the document's calendar date.
	Date time.Time

	// Excerpt is the short snippet for display.
	Excerpt string

	// Position is the offset in days from the anchor date. Entries on
	// the anchor date have position zero.
	Position int

	// PrevPath is the path of the preceding entry in the window, if any.
	PrevPath string

	// NextPath is the path of the following entry in the window, if any.
	NextPath string
}

// IndexStats summarises a bulk indexing pass.
type IndexStats struct {
	// Indexed is the number of documents upserted.
	Indexed int

	// Skipped is the number of files that could not be read.
	Skipped int

	// Pruned is the number of stale index entries removed because their
	// backing file no longer exists.
	Pruned int
}
