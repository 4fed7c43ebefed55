// Package styles defines the colour palette and lipgloss styles shared by
// the recall views.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the colour set the views draw from. Documents are the centre
// of every screen, so the accent goes to titles and the selection bar while
// dates, excerpts and chrome stay dim.
type Palette struct {
	// Accent colours view titles and the selected row.
	Accent lipgloss.Color

	// Heading colours secondary headings such as result counts.
	Heading lipgloss.Color

	// Text is the default document text colour.
	Text lipgloss.Color

	// Dim is for excerpts, scores, key hints and other chrome.
	Dim lipgloss.Color

	// Danger colours error messages.
	Danger lipgloss.Color

	// Frame is the input border colour.
	Frame lipgloss.Color

	// BarBg is the status bar background.
	BarBg lipgloss.Color
}

// DefaultPalette returns the default colours.
func DefaultPalette() Palette {
	return Palette{
		Accent:  lipgloss.Color("#E0AF68"), // amber
		Heading: lipgloss.Color("#7AA2F7"), // blue
		Text:    lipgloss.Color("#C0CAF5"),
		Dim:     lipgloss.Color("#565F89"),
		Danger:  lipgloss.Color("#F7768E"),
		Frame:   lipgloss.Color("#3B4261"),
		BarBg:   lipgloss.Color("#16161E"),
	}
}

// Styles holds the pre-built lipgloss styles the views render with. Only
// what the search, timeline and document screens use is defined here.
type Styles struct {
	// Title styles view headers and document titles.
	Title lipgloss.Style

	// Subtitle styles result counts and dates.
	Subtitle lipgloss.Style

	// Normal styles body and entry text.
	Normal lipgloss.Style

	// Muted styles excerpts, scores and hints.
	Muted lipgloss.Style

	// Selected styles the highlighted list row.
	Selected lipgloss.Style

	// Error styles error messages.
	Error lipgloss.Style

	// Help styles the key hint footer.
	Help lipgloss.Style

	// StatusBar styles the bottom status line.
	StatusBar lipgloss.Style

	// InputField frames the query input.
	InputField lipgloss.Style
}

// New builds the view styles from a palette.
func New(p Palette) *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Heading),

		Normal: lipgloss.NewStyle().
			Foreground(p.Text),

		Muted: lipgloss.NewStyle().
			Foreground(p.Dim),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.BarBg).
			Background(p.Accent),

		Error: lipgloss.NewStyle().
			Foreground(p.Danger),

		Help: lipgloss.NewStyle().
			Foreground(p.Dim),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.Dim).
			Background(p.BarBg).
			Padding(0, 1),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Frame).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default palette.
func DefaultStyles() *Styles {
	return New(DefaultPalette())
}
