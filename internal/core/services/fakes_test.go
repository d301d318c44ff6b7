package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/skycast/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
)

// manualClock fires timers only when Advance is called.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) driven.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves time forward and runs due callbacks on the caller's goroutine.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t.fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeSearcher returns canned candidates per query.
type fakeSearcher struct {
	mu       sync.Mutex
	results  map[string][]domain.Candidate
	err      error
	calls    []string
	onSearch func(query string)
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{results: make(map[string][]domain.Candidate)}
}

func (s *fakeSearcher) Search(_ context.Context, query string) ([]domain.Candidate, error) {
	s.mu.Lock()
	s.calls = append(s.calls, query)
	hook := s.onSearch
	result := s.results[query]
	err := s.err
	s.mu.Unlock()

	if hook != nil {
		hook(query)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *fakeSearcher) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// fakeForecasts returns a bundle named after the requested city.
// A city with a gate blocks until the gate is closed.
type fakeForecasts struct {
	mu      sync.Mutex
	errs    map[string]error
	gates   map[string]chan struct{}
	nilFor  map[string]bool
	calls   []string
	days    []int
	started chan string
}

func newFakeForecasts() *fakeForecasts {
	return &fakeForecasts{
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
		nilFor:  make(map[string]bool),
		started: make(chan string, 16),
	}
}

func (f *fakeForecasts) FetchForecast(ctx context.Context, city string, days int) (*domain.ForecastBundle, error) {
	f.mu.Lock()
	f.calls = append(f.calls, city)
	f.days = append(f.days, days)
	gate := f.gates[city]
	err := f.errs[city]
	empty := f.nilFor[city]
	f.mu.Unlock()

	f.started <- city
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}
	return bundleFor(city), nil
}

func (f *fakeForecasts) SetErr(city string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[city] = err
}

func (f *fakeForecasts) Gate(city string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gates[city] = gate
	return gate
}

func (f *fakeForecasts) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func bundleFor(city string) *domain.ForecastBundle {
	return &domain.ForecastBundle{
		Current: domain.CurrentConditions{
			TempC:         18,
			ConditionText: "Partly cloudy",
			WindKph:       11.2,
			Humidity:      64,
		},
		Location: domain.LocationInfo{Name: city, Country: "United Kingdom"},
		Daily: []domain.DailyForecast{
			{Date: "2026-10-17", AvgTempC: 15, ConditionText: "Sunny"},
			{Date: "2026-10-18", AvgTempC: 14, ConditionText: "Light rain"},
		},
	}
}

// flakyStore wraps a memory store and fails the first N reads or writes.
type flakyStore struct {
	*memory.KVStore

	mu       sync.Mutex
	getFails int
	setFails int
	getCalls int
	setCalls int
	failErr  error
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		KVStore: memory.NewKVStore(),
		failErr: errors.New("disk full"),
	}
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	s.getCalls++
	fail := s.getFails > 0
	if fail {
		s.getFails--
	}
	s.mu.Unlock()
	if fail {
		return "", false, s.failErr
	}
	return s.KVStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.setCalls++
	fail := s.setFails > 0
	if fail {
		s.setFails--
	}
	s.mu.Unlock()
	if fail {
		return s.failErr
	}
	return s.KVStore.Set(ctx, key, value)
}

func (s *flakyStore) SetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

func (s *flakyStore) GetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

// recorder collects published snapshots.
type recorder struct {
	mu    sync.Mutex
	snaps []domain.ResolverSnapshot
}

func (r *recorder) record(snap domain.ResolverSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
}

func (r *recorder) States() []domain.ResolverState {
	r.mu.Lock()
	defer r.mu.Unlock()
	states := make([]domain.ResolverState, 0, len(r.snaps))
	for _, s := range r.snaps {
		states = append(states, s.State)
	}
	return states
}
