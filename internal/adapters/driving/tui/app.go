package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/messages"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/styles"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/views/document"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/views/search"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/tui/views/timeline"
	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// searchView is the search input and results view.
	searchView *search.View

	// timelineView is the chronological browsing view.
	timelineView *timeline.View

	// documentView shows full document content.
	documentView *document.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// returnView is the view to return to when leaving the document view.
	returnView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		searchView:   search.NewView(s, nil, ports.Search),
		timelineView: timeline.NewView(s, ports.Search),
		documentView: document.NewView(s, ports.Search),
		currentView:  messages.ViewSearch,
		returnView:   messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.timelineView.WithContext(ctx)
	a.documentView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("recall - Agent Memory"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.timelineView.SetDimensions(msg.Width, msg.Height)
		a.documentView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			a.err = a.searchView.Err()
			return a, cmd

		case messages.ViewTimeline:
			a.timelineView, cmd = a.timelineView.Update(msg)
			return a, cmd

		case messages.ViewDocument:
			a.documentView, cmd = a.documentView.Update(msg)
			return a, cmd
		}
		return a, nil

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.TimelineRequested:
		a.currentView = messages.ViewTimeline
		a.returnView = messages.ViewTimeline
		return a, a.timelineView.SetAnchor(msg.Anchor)

	case messages.TimelineLoaded:
		a.timelineView, cmd = a.timelineView.Update(msg)
		return a, cmd

	case messages.DocumentRequested:
		a.returnView = a.currentView
		a.currentView = messages.ViewDocument
		return a, a.documentView.SetPath(msg.Path)

	case messages.DocumentLoaded:
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		// Esc from the document view returns to where it was opened from
		if msg.View == messages.ViewSearch && a.currentView == messages.ViewDocument {
			a.currentView = a.returnView
			return a, nil
		}
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewTimeline:
			a.timelineView, cmd = a.timelineView.Update(msg)
		case messages.ViewDocument:
			a.documentView, cmd = a.documentView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewTimeline:
		a.timelineView, cmd = a.timelineView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewTimeline:
		return a.timelineView.View()
	case messages.ViewDocument:
		return a.documentView.View()
	default:
		return a.searchView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.timelineView.SetDimensions(width, height)
	a.documentView.SetDimensions(width, height)
}
