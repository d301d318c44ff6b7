// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skycast/internal/core/domain"
)

// CandidateList displays location candidates in a navigable list.
type CandidateList struct {
	candidates []domain.Candidate
	selected   int
	styles     *styles.Styles
	width      int
	height     int
}

// NewCandidateList creates a new candidate list component.
func NewCandidateList(s *styles.Styles) *CandidateList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CandidateList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders the candidate list.
func (c *CandidateList) View() string {
	if len(c.candidates) == 0 {
		return c.styles.Muted.Render("  No matching cities")
	}

	visible := c.height
	if visible < 1 {
		visible = 1
	}

	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := start + visible
	if end > len(c.candidates) {
		end = len(c.candidates)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, c.renderCandidate(i, c.candidates[i]))
	}
	return strings.Join(lines, "\n")
}

// renderCandidate formats a single candidate row.
func (c *CandidateList) renderCandidate(index int, candidate domain.Candidate) string {
	label := candidate.Label()
	if candidate.Region != "" && candidate.Region != candidate.Name {
		label = fmt.Sprintf("%s (%s)", label, candidate.Region)
	}

	maxLen := c.width - 6
	if maxLen < 10 {
		maxLen = 10
	}
	if runes := []rune(label); len(runes) > maxLen {
		label = string(runes[:maxLen-3]) + "..."
	}

	if index == c.selected {
		return c.styles.Selected.Render("📍 " + label)
	}
	return c.styles.Normal.Render("   " + label)
}

// SetCandidates replaces the list and resets the highlight.
func (c *CandidateList) SetCandidates(candidates []domain.Candidate) {
	c.candidates = candidates
	c.selected = 0
}

// Candidates returns the current candidates.
func (c *CandidateList) Candidates() []domain.Candidate {
	return c.candidates
}

// Selected returns the index of the highlighted candidate.
func (c *CandidateList) Selected() int {
	return c.selected
}

// SelectedCandidate returns the highlighted candidate, or nil if none.
func (c *CandidateList) SelectedCandidate() *domain.Candidate {
	if c.selected < 0 || c.selected >= len(c.candidates) {
		return nil
	}
	return &c.candidates[c.selected]
}

// MoveUp moves the highlight up.
func (c *CandidateList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves the highlight down.
func (c *CandidateList) MoveDown() {
	if c.selected < len(c.candidates)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *CandidateList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of candidates.
func (c *CandidateList) Count() int {
	return len(c.candidates)
}

// IsEmpty returns whether the list is empty.
func (c *CandidateList) IsEmpty() bool {
	return len(c.candidates) == 0
}
