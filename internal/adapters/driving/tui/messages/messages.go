// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/skycast/internal/core/domain"
)

// SnapshotChanged is sent whenever the resolver publishes a transition.
// The model re-reads the snapshot rather than trusting the payload order.
type SnapshotChanged struct {
	Snapshot domain.ResolverSnapshot
}

// CandidateChosen is sent when the user confirms a candidate.
type CandidateChosen struct {
	Candidate domain.Candidate
}

// SelectCompleted carries the outcome of a resolver selection.
type SelectCompleted struct {
	Candidate domain.Candidate
	Err       error
}

// BootstrapCompleted carries the outcome of the initial forecast load.
type BootstrapCompleted struct {
	Err error
}

// RefreshCompleted carries the outcome of a manual refresh.
type RefreshCompleted struct {
	Err error
}

// ConfigReloaded is sent after the config file changed on disk.
type ConfigReloaded struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Focus identifies which pane receives navigation keys.
type Focus int

const (
	// FocusInput routes keys to the search input.
	FocusInput Focus = iota
	// FocusCandidates routes up/down to the candidate list.
	FocusCandidates
)

// String returns the string representation of the focus.
func (f Focus) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusCandidates:
		return "candidates"
	default:
		return "unknown"
	}
}
