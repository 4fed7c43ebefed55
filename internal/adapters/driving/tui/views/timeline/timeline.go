// Package timeline provides the chronological browsing view for the TUI.
package timeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/messages"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/styles"
	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driving"
)

// View is the timeline view: documents in date order around an anchor.
type View struct {
	styles        *styles.Styles
	searchService driving.SearchService
	ctx           context.Context

	anchor   time.Time
	entries  []domain.TimelineEntry
	selected int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
}

// NewView creates a new timeline view.
func NewView(s *styles.Styles, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:        s,
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetAnchor positions the timeline around a date and loads entries.
func (v *View) SetAnchor(anchor time.Time) tea.Cmd {
	v.anchor = anchor
	v.entries = nil
	v.selected = 0
	v.err = nil
	v.loading = true
	return v.loadEntries()
}

// loadEntries returns a command that fetches the window around the anchor.
func (v *View) loadEntries() tea.Cmd {
	anchor := v.anchor
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.TimelineLoaded{Anchor: anchor, Err: fmt.Errorf("search service not available")}
		}

		entries, err := v.searchService.Timeline(v.ctx, anchor, 0)
		return messages.TimelineLoaded{Anchor: anchor, Entries: entries, Err: err}
	}
}

// Update handles messages for the timeline view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TimelineLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.entries = msg.Entries
		v.selected = 0
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case "left", "h":
		// Shift the window one day earlier
		return v, v.SetAnchor(v.anchor.AddDate(0, 0, -1))
	case "right", "l":
		// Shift the window one day later
		return v, v.SetAnchor(v.anchor.AddDate(0, 0, 1))
	case "enter":
		entry := v.SelectedEntry()
		if entry != nil {
			path := entry.Path
			return v, func() tea.Msg {
				return messages.DocumentRequested{Path: path}
			}
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}

	return v, nil
}

// View renders the timeline view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Timeline around %s", v.anchor.Format("2006-01-02"))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.entries) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents in this window"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	for i := range v.entries {
		b.WriteString(v.renderEntry(i, &v.entries[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderEntry formats one timeline entry.
func (v *View) renderEntry(index int, entry *domain.TimelineEntry) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := entry.Title
	if title == "" {
		title = "(Untitled)"
	}

	offset := fmt.Sprintf("%+dd", entry.Position)
	if entry.Position == 0 {
		offset = "  ·"
	}

	line := fmt.Sprintf("%s%s  %s  %s", indicator, entry.Date.Format("2006-01-02"), offset, title)
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [←/→] shift window  [enter] open  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Anchor returns the current anchor date.
func (v *View) Anchor() time.Time {
	return v.anchor
}

// Entries returns the loaded timeline entries.
func (v *View) Entries() []domain.TimelineEntry {
	return v.entries
}

// Selected returns the index of the selected entry.
func (v *View) Selected() int {
	return v.selected
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (v *View) SelectedEntry() *domain.TimelineEntry {
	if len(v.entries) == 0 || v.selected < 0 || v.selected >= len(v.entries) {
		return nil
	}
	return &v.entries[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
