// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/styles"
)

// CityInput wraps a bubbles textinput for typing a city name.
type CityInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewCityInput creates a new city search input component.
func NewCityInput(s *styles.Styles) *CityInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search city"
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 40

	return &CityInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (c *CityInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages and reports whether the text changed.
func (c *CityInput) Update(msg tea.Msg) (*CityInput, tea.Cmd, bool) {
	before := c.textinput.Value()

	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)

	return c, cmd, c.textinput.Value() != before
}

// View renders the input.
func (c *CityInput) View() string {
	label := c.styles.Title.Render("🔍 City: ")
	field := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (c *CityInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value.
func (c *CityInput) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (c *CityInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *CityInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *CityInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *CityInput) SetWidth(width int) {
	c.width = width
	// Account for label and border
	inputWidth := width - 16
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *CityInput) Width() int {
	return c.width
}

// Reset clears the input.
func (c *CityInput) Reset() {
	c.textinput.Reset()
}
