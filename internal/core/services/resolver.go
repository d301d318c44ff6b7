package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
	"github.com/custodia-labs/skycast/internal/core/ports/driving"
	"github.com/custodia-labs/skycast/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.TypeaheadResolver = (*Resolver)(nil)

// ResolverConfig holds configuration for the typeahead resolver.
type ResolverConfig struct {
	// Search configures debouncing and the minimum query length.
	Search domain.SearchSettings

	// Forecast configures the horizon, default city and failure policy.
	Forecast domain.ForecastSettings

	// Clock drives the debounce timer. Defaults to the wall clock.
	Clock driven.Clock
}

// Resolver coordinates user input, debouncing, the candidate list
// lifecycle, selection and the fallback to the last known city.
//
// Searches and forecast fetches are versioned independently: a response is
// applied only if no newer request of the same kind was issued after it.
// No lock is held across network or store calls.
type Resolver struct {
	searcher  driven.LocationSearcher
	forecasts driven.ForecastSource
	store     driven.KeyValueStore
	config    ResolverConfig
	debounce  *Debouncer
	ctx       context.Context

	mu           sync.Mutex
	state        domain.ResolverState
	query        string
	candidates   []domain.Candidate
	searchErr    error
	selection    *domain.Selection
	bundle       *domain.ForecastBundle
	stale        bool
	err          error
	selectSeq    uint64
	listeners    map[int]func(domain.ResolverSnapshot)
	nextListener int
	closed       bool
}

// NewResolver creates a resolver. The store may be nil, in which case the
// last city is neither read nor written.
func NewResolver(
	searcher driven.LocationSearcher,
	forecasts driven.ForecastSource,
	store driven.KeyValueStore,
	config ResolverConfig,
) *Resolver {
	defaults := domain.DefaultAppSettings()
	if config.Search.MinQueryLength <= 0 {
		config.Search.MinQueryLength = defaults.Search.MinQueryLength
	}
	if config.Search.QuietWindow <= 0 {
		config.Search.QuietWindow = defaults.Search.QuietWindow
	}
	if config.Forecast.Days == 0 {
		config.Forecast.Days = defaults.Forecast.Days
	}
	if config.Forecast.DefaultCity == "" {
		config.Forecast.DefaultCity = defaults.Forecast.DefaultCity
	}

	return &Resolver{
		searcher:  searcher,
		forecasts: forecasts,
		store:     store,
		config:    config,
		debounce:  NewDebouncer(config.Clock, config.Search.QuietWindow),
		ctx:       context.Background(),
		state:     domain.StateIdle,
		listeners: make(map[int]func(domain.ResolverSnapshot)),
	}
}

// WithContext sets the context used for debounced searches.
func (r *Resolver) WithContext(ctx context.Context) *Resolver {
	r.ctx = ctx
	return r
}

// QueryChanged records text and schedules a debounced search.
// Queries shorter than the minimum length cancel any pending or running
// search but leave the current candidate list untouched.
func (r *Resolver) QueryChanged(text string) {
	query := strings.TrimSpace(text)

	r.mu.Lock()
	r.query = text
	if r.closed {
		r.mu.Unlock()
		return
	}
	if utf8.RuneCountInString(query) >= r.config.Search.MinQueryLength {
		r.debounce.Trigger(func(seq uint64) {
			r.dispatchSearch(seq, query)
		})
		r.mu.Unlock()
		return
	}

	r.debounce.Cancel()
	settled := r.settleSearchLocked()
	snap := r.snapshotLocked()
	r.mu.Unlock()
	if settled {
		r.publish(snap)
	}
}

// settleSearchLocked leaves Searching once the running search has been
// cancelled with nothing scheduled to replace it (caller must hold lock).
// It reports whether the state changed.
func (r *Resolver) settleSearchLocked() bool {
	if r.state != domain.StateSearching {
		return false
	}
	switch {
	case r.candidates != nil:
		r.state = domain.StateShowingCandidates
	case r.err != nil:
		r.state = domain.StateFailed
	case r.bundle != nil:
		r.state = domain.StateReady
	default:
		r.state = domain.StateIdle
	}
	return true
}

// dispatchSearch runs a debounced search once the quiet window has elapsed.
func (r *Resolver) dispatchSearch(seq uint64, query string) {
	r.mu.Lock()
	if r.closed || !r.debounce.IsCurrent(seq) {
		r.mu.Unlock()
		return
	}
	if r.state != domain.StateLoading {
		r.state = domain.StateSearching
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.publish(snap)

	logger.Debug("searching locations for %q", query)
	candidates, err := r.searcher.Search(r.ctx, query)
	r.applyCandidates(seq, query, candidates, err)
}

// applyCandidates replaces the candidate list if seq is still current.
func (r *Resolver) applyCandidates(seq uint64, query string, candidates []domain.Candidate, err error) {
	r.mu.Lock()
	if !r.debounce.IsCurrent(seq) {
		r.mu.Unlock()
		logger.Debug("discarding stale candidates for %q", query)
		return
	}

	if err != nil {
		logger.Warn("location search for %q failed: %v", query, err)
		r.candidates = []domain.Candidate{}
		r.searchErr = err
	} else {
		if candidates == nil {
			candidates = []domain.Candidate{}
		}
		r.candidates = candidates
		r.searchErr = nil
	}
	if r.state != domain.StateLoading {
		r.state = domain.StateShowingCandidates
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.publish(snap)
}

// Select makes candidate the active selection and fetches its forecast.
// On success the city name is persisted; persistence failures are logged
// and never affect the returned error.
func (r *Resolver) Select(ctx context.Context, candidate domain.Candidate) error {
	if strings.TrimSpace(candidate.Name) == "" {
		return fmt.Errorf("%w: candidate has no name", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	r.debounce.Cancel()
	r.candidates = nil
	r.searchErr = nil
	seq := r.beginFetchLocked(domain.NewSelection(candidate))
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.publish(snap)

	if err := r.fetchAndApply(ctx, seq, candidate.Name); err != nil {
		return err
	}

	r.persist(ctx, seq, candidate.Name)
	return nil
}

// Bootstrap fetches the forecast for the persisted city, falling back to
// the default city. It never writes the store.
func (r *Resolver) Bootstrap(ctx context.Context) error {
	sel := r.initialSelection(ctx)
	logger.Debug("bootstrapping with %s city %q", sel.Source, sel.Name)

	r.mu.Lock()
	seq := r.beginFetchLocked(sel)
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.publish(snap)

	return r.fetchAndApply(ctx, seq, sel.Name)
}

// Refresh re-fetches the forecast for the active selection.
// Without a selection it behaves like Bootstrap.
func (r *Resolver) Refresh(ctx context.Context) error {
	r.mu.Lock()
	if r.selection == nil {
		r.mu.Unlock()
		return r.Bootstrap(ctx)
	}
	sel := *r.selection
	seq := r.beginFetchLocked(sel)
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.publish(snap)

	return r.fetchAndApply(ctx, seq, sel.Name)
}

// initialSelection picks the persisted city, or the default city.
func (r *Resolver) initialSelection(ctx context.Context) domain.Selection {
	if city, ok := readLastCity(ctx, r.store); ok {
		return domain.Selection{Name: city, Source: domain.SelectionPersisted}
	}
	return domain.Selection{
		Name:   r.config.Forecast.DefaultCity,
		Source: domain.SelectionDefault,
	}
}

// beginFetchLocked installs sel and moves to loading (caller must hold lock).
func (r *Resolver) beginFetchLocked(sel domain.Selection) uint64 {
	r.selectSeq++
	r.selection = &sel
	r.state = domain.StateLoading
	return r.selectSeq
}

// fetchAndApply fetches the forecast for city and applies the result if
// seq is still the latest selection.
func (r *Resolver) fetchAndApply(ctx context.Context, seq uint64, city string) error {
	bundle, err := r.forecasts.FetchForecast(ctx, city, r.config.Forecast.Days)
	if err == nil && bundle == nil {
		err = fmt.Errorf("%w: empty forecast for %q", domain.ErrParse, city)
	}

	r.mu.Lock()
	if seq != r.selectSeq {
		r.mu.Unlock()
		logger.Debug("discarding forecast for %q: superseded", city)
		return domain.ErrSuperseded
	}

	if err != nil {
		logger.Warn("forecast for %q failed: %v", city, err)
		r.state = domain.StateFailed
		r.err = err
		if !r.config.Forecast.RetainOnFailure {
			r.bundle = nil
		}
		r.stale = r.bundle != nil
	} else {
		r.state = domain.StateReady
		r.bundle = bundle
		r.err = nil
		r.stale = false
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.publish(snap)

	return err
}

// persist writes the last city, retrying once. Failures are swallowed.
// Nothing is written if a newer selection has started since seq.
func (r *Resolver) persist(ctx context.Context, seq uint64, city string) {
	if r.store == nil {
		return
	}

	r.mu.Lock()
	current := seq == r.selectSeq
	r.mu.Unlock()
	if !current {
		return
	}

	err := r.store.Set(ctx, domain.PersistedCityKey, city)
	if err != nil {
		logger.Warn("saving last city failed, retrying: %v", err)
		err = r.store.Set(ctx, domain.PersistedCityKey, city)
	}
	if err != nil {
		logger.Warn("saving last city %q failed: %v", city, err)
		return
	}
	logger.Info("saved last city %q", city)
}

// Snapshot returns the current state.
func (r *Resolver) Snapshot() domain.ResolverSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// snapshotLocked builds a snapshot (caller must hold lock).
func (r *Resolver) snapshotLocked() domain.ResolverSnapshot {
	snap := domain.ResolverSnapshot{
		State:     r.state,
		Query:     r.query,
		Forecast:  r.bundle,
		Stale:     r.stale,
		SearchErr: r.searchErr,
	}
	if r.candidates != nil {
		snap.Candidates = append([]domain.Candidate{}, r.candidates...)
	}
	if r.selection != nil {
		sel := *r.selection
		snap.Selection = &sel
	}
	if r.state == domain.StateFailed {
		snap.Err = r.err
	}
	snap.ErrKind = domain.KindOf(snap.Err)
	return snap
}

// Subscribe registers fn to receive snapshots after every transition.
func (r *Resolver) Subscribe(fn func(domain.ResolverSnapshot)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextListener
	r.nextListener++
	r.listeners[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// publish delivers snap to all listeners outside the lock.
func (r *Resolver) publish(snap domain.ResolverSnapshot) {
	r.mu.Lock()
	fns := make([]func(domain.ResolverSnapshot), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Close stops any pending debounce timer. In-flight searches are discarded.
func (r *Resolver) Close() {
	r.mu.Lock()
	r.closed = true
	r.debounce.Cancel()
	settled := r.settleSearchLocked()
	snap := r.snapshotLocked()
	r.mu.Unlock()
	if settled {
		r.publish(snap)
	}
}
