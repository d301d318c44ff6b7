package driving

import (
	"context"

	"github.com/custodia-labs/skycast/internal/core/domain"
)

// TypeaheadResolver turns raw keystrokes into a confirmed selection and a
// derived forecast fetch.
type TypeaheadResolver interface {
	// QueryChanged records the latest search text and schedules a debounced
	// search. It never blocks on the network.
	QueryChanged(text string)

	// Select makes candidate the active selection and fetches its forecast.
	// It returns domain.ErrSuperseded if a newer selection was made while
	// the fetch was in flight.
	Select(ctx context.Context, candidate domain.Candidate) error

	// Bootstrap fetches the forecast for the persisted city, or the default
	// city when none has been persisted.
	Bootstrap(ctx context.Context) error

	// Refresh re-fetches the forecast for the active selection.
	Refresh(ctx context.Context) error

	// Snapshot returns the current state.
	Snapshot() domain.ResolverSnapshot

	// Subscribe registers fn to receive a snapshot after every transition.
	// The returned function removes the subscription.
	Subscribe(fn func(domain.ResolverSnapshot)) (unsubscribe func())

	// Close stops any pending debounce timer.
	Close()
}
