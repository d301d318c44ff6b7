// Package styles provides colour themes and styling for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is a palette named after what each colour marks on screen.
type Theme struct {
	Sky   lipgloss.Color // accents and titles
	Sun   lipgloss.Color // secondary headers
	Night lipgloss.Color // status bar background and selected text
	Text  lipgloss.Color
	Dim   lipgloss.Color
	Fresh lipgloss.Color // a forecast that just arrived
	Stale lipgloss.Color // outdated data and warnings
	Alert lipgloss.Color
	Edge  lipgloss.Color
	Tile  lipgloss.Color // daily forecast cards
}

// DayTheme is used while it is daytime at the forecast location.
func DayTheme() *Theme {
	return &Theme{
		Sky:   lipgloss.Color("#38BDF8"),
		Sun:   lipgloss.Color("#FDE68A"),
		Night: lipgloss.Color("#0F172A"),
		Text:  lipgloss.Color("#F1F5F9"),
		Dim:   lipgloss.Color("#94A3B8"),
		Fresh: lipgloss.Color("#86EFAC"),
		Stale: lipgloss.Color("#FDBA74"),
		Alert: lipgloss.Color("#FCA5A5"),
		Edge:  lipgloss.Color("#334155"),
		Tile:  lipgloss.Color("#1E293B"),
	}
}

// NightTheme swaps the sky accents for moonlit ones.
func NightTheme() *Theme {
	t := DayTheme()
	t.Sky = lipgloss.Color("#A5B4FC")
	t.Sun = lipgloss.Color("#E2E8F0")
	t.Tile = lipgloss.Color("#1E1B4B")
	t.Edge = lipgloss.Color("#312E81")
	return t
}

// DefaultTheme returns the day theme.
func DefaultTheme() *Theme {
	return DayTheme()
}

// ThemeFor picks the day or night palette.
func ThemeFor(isDay bool) *Theme {
	if isDay {
		return DayTheme()
	}
	return NightTheme()
}

// Styles contains pre-configured lipgloss styles shared by every component.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style

	// Temperature renders the current temperature.
	Temperature lipgloss.Style

	// DayCard renders one tile of the daily strip.
	DayCard lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	text := lipgloss.NewStyle().Foreground(theme.Text)
	rounded := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Edge)

	return &Styles{
		theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Sky),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Sun),
		Normal:   text,
		Muted:    lipgloss.NewStyle().Foreground(theme.Dim),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Night).
			Background(theme.Sky),

		Error:   lipgloss.NewStyle().Foreground(theme.Alert),
		Success: lipgloss.NewStyle().Foreground(theme.Fresh),
		Warning: lipgloss.NewStyle().Foreground(theme.Stale),

		InputField: rounded.Padding(0, 1),
		Help:       lipgloss.NewStyle().Foreground(theme.Dim),
		Border:     rounded,

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Dim).
			Background(theme.Night).
			Padding(0, 1),

		Temperature: text.Bold(true),

		DayCard: text.
			Background(theme.Tile).
			Align(lipgloss.Center).
			Width(12).
			Padding(0, 1).
			MarginRight(1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Apply restyles s in place, so every component holding s follows.
func (s *Styles) Apply(theme *Theme) {
	*s = *NewStyles(theme)
}
