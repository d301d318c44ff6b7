// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skycast/internal/core/domain"
)

// ErrorMarker prefixes the status text when the resolver has failed.
const ErrorMarker = "✖"

// Bar displays resolver status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	snap    domain.ResolverSnapshot
	spinner string
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the resolver state.
func (s *Bar) renderLeft() string {
	if s.message != "" {
		return s.styles.Warning.Render(s.message)
	}

	snap := s.snap
	switch snap.State {
	case domain.StateSearching:
		return s.styles.Muted.Render(s.busy("Searching..."))
	case domain.StateLoading:
		name := ""
		if snap.Selection != nil {
			name = snap.Selection.Name
		}
		return s.styles.Muted.Render(s.busy(fmt.Sprintf("Loading forecast for %s...", name)))
	case domain.StateShowingCandidates:
		if snap.SearchErr != nil {
			kind := domain.KindOf(snap.SearchErr)
			return s.styles.Warning.Render(fmt.Sprintf("%s Search failed: %s", ErrorMarker, kind.Description()))
		}
		if len(snap.Candidates) == 0 {
			return s.styles.Muted.Render(domain.ErrorKindEmptyResult.Description())
		}
		return s.styles.Normal.Render(fmt.Sprintf("%d cities", len(snap.Candidates)))
	case domain.StateFailed:
		text := fmt.Sprintf("%s %s", ErrorMarker, snap.ErrKind.Description())
		if snap.Stale {
			text += " (showing last forecast)"
		}
		return s.styles.Error.Render(text)
	case domain.StateReady:
		if snap.Forecast != nil && !snap.Forecast.FetchedAt.IsZero() {
			return s.styles.Success.Render("Updated " + snap.Forecast.FetchedAt.Format("15:04"))
		}
		return s.styles.Success.Render("Ready")
	case domain.StateIdle:
	}
	return s.styles.Muted.Render("Ready")
}

// busy prefixes text with the spinner frame when one is set.
func (s *Bar) busy(text string) string {
	if s.spinner == "" {
		return text
	}
	return s.spinner + " " + text
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.snap.State == domain.StateShowingCandidates && len(s.snap.Candidates) > 0 {
		bindings = s.keymap.CandidatesHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetSnapshot updates the displayed resolver state.
func (s *Bar) SetSnapshot(snap domain.ResolverSnapshot) {
	s.snap = snap
}

// State returns the displayed resolver state.
func (s *Bar) State() domain.ResolverState {
	return s.snap.State
}

// SetSpinner sets the spinner frame shown while busy.
func (s *Bar) SetSpinner(frame string) {
	s.spinner = frame
}

// SetMessage sets a message that overrides the state text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear removes any message.
func (s *Bar) Clear() {
	s.message = ""
}
