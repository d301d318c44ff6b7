package domain

// ResolverState is the typeahead resolver's position in its state machine.
type ResolverState int

// Resolver states.
const (
	// StateIdle is the state before any search or fetch.
	StateIdle ResolverState = iota
	// StateSearching means a debounced search has been dispatched.
	StateSearching
	// StateShowingCandidates means a candidate list (possibly empty) is available.
	StateShowingCandidates
	// StateLoading means a forecast fetch is in flight.
	StateLoading
	// StateReady means the forecast for the active selection is available.
	StateReady
	// StateFailed means the last forecast fetch failed.
	StateFailed
)

// String returns the string representation of the state.
func (s ResolverState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateShowingCandidates:
		return "showing_candidates"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Busy reports whether a loading indicator should be shown.
func (s ResolverState) Busy() bool {
	return s == StateSearching || s == StateLoading
}

// ResolverSnapshot is an immutable view of the resolver handed to the
// presentation layer after every transition.
type ResolverSnapshot struct {
	// State is the current state.
	State ResolverState

	// Query is the latest text received, whether or not it was searched.
	Query string

	// Candidates is the current candidate list. Nil means no list is shown,
	// an empty non-nil slice means the search matched nothing.
	Candidates []Candidate

	// Selection is the active selection, nil before the first fetch.
	Selection *Selection

	// Forecast is the last successfully fetched bundle.
	Forecast *ForecastBundle

	// Stale is true when Forecast belongs to an earlier fetch that was
	// followed by a failed one.
	Stale bool

	// Err is the last forecast error, nil unless State is StateFailed.
	Err error

	// ErrKind classifies Err.
	ErrKind ErrorKind

	// SearchErr is the last search error. Search failures never move the
	// resolver to StateFailed.
	SearchErr error
}

// HasCandidates reports whether a candidate list should be displayed.
func (s ResolverSnapshot) HasCandidates() bool {
	return s.Candidates != nil
}
