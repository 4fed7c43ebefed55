// Package search provides the main search view for the TUI.
package search

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/components/list"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/components/status"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/keymap"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/messages"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/styles"
	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driving"
)

// resultLimit caps the number of hits fetched per search.
const resultLimit = 20

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     textinput.Model
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// newQueryInput builds the keyword input used as Layer 1 entry point.
func newQueryInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search memory..."
	ti.Prompt = "? "
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()
	return ti
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         newQueryInput(),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		ready:         false,
		focusInput:    true, // Start in input mode
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	// Forward to list component
	var listCmd tea.Cmd
	v.list, listCmd = v.list.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc in results mode returns to input mode
	if msg.Type == tea.KeyEsc {
		if !v.focusInput {
			v.focusInput = true
			v.input.Focus()
			return v, nil
		}
		return v, tea.Quit
	}

	// Enter in input mode submits search
	if msg.Type == tea.KeyEnter && v.focusInput {
		query := v.input.Value()
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		v.focusInput = false // Move to results mode after search
		v.input.Blur()
		cmd := v.performSearch(query)
		return v, cmd
	}

	// Input mode: all keys go to input
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Results mode: Enter opens the selected document
	if msg.Type == tea.KeyEnter {
		result := v.list.SelectedResult()
		if result != nil {
			path := result.Path
			return v, func() tea.Msg {
				return messages.DocumentRequested{Path: path}
			}
		}
		return v, nil
	}

	// Results mode: handle navigation
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		return v, nil
	case "j":
		v.list.MoveDown()
		return v, nil
	case "n":
		// New search: clear input and focus it
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
		return v, nil
	case "t":
		// Timeline around the selected result's date
		result := v.list.SelectedResult()
		if result != nil {
			anchor := result.Date
			return v, func() tea.Msg {
				return messages.TimelineRequested{Anchor: anchor}
			}
		}
		return v, nil
	}

	return v, nil
}

// performSearch executes a search and returns results.
func (v *View) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		results, err := v.searchService.Search(v.ctx, query, resultLimit)
		if err != nil {
			return messages.SearchCompleted{Results: nil, Err: err}
		}
		return messages.SearchCompleted{Results: results, Err: nil}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))

	// Switch to results mode after successful search
	v.focusInput = false
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	// Header
	header := v.styles.Title.Render("Recall")
	sections = append(sections, header, "")

	// Query input
	inputView := v.styles.InputField.Render(v.input.View())
	sections = append(sections, inputView, "")

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Results list
	listView := v.list.View()
	sections = append(sections, listView)

	// Status bar at bottom
	sections = append(sections, "")
	statusView := v.statusbar.View()
	sections = append(sections, statusView)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	v.input.Width = inputWidth
	v.list.SetDimensions(width, height-8) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
