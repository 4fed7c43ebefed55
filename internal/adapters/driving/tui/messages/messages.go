// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Results []domain.SearchResult
	Err     error
}

// DocumentRequested is a command to load a document's full content.
type DocumentRequested struct {
	Path string
}

// DocumentLoaded carries a full document back to the model.
type DocumentLoaded struct {
	Document domain.Document
	Err      error
}

// TimelineRequested is a command to load the timeline around a date.
type TimelineRequested struct {
	Anchor time.Time
}

// TimelineLoaded carries timeline entries back to the model.
type TimelineLoaded struct {
	Anchor  time.Time
	Entries []domain.TimelineEntry
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewTimeline is the chronological browsing view.
	ViewTimeline
	// ViewDocument shows full document content.
	ViewDocument
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewTimeline:
		return "timeline"
	case ViewDocument:
		return "document"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
