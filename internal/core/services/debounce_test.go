package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_RunsAfterWindow(t *testing.T) {
	clock := newManualClock()
	d := NewDebouncer(clock, time.Second)

	var got []uint64
	seq := d.Trigger(func(s uint64) { got = append(got, s) })

	clock.Advance(999 * time.Millisecond)
	assert.Empty(t, got)

	clock.Advance(time.Millisecond)
	assert.Equal(t, []uint64{seq}, got)
	assert.True(t, d.IsCurrent(seq))
}

func TestDebouncer_OnlyLastTriggerRuns(t *testing.T) {
	clock := newManualClock()
	d := NewDebouncer(clock, time.Second)

	var calls []string
	d.Trigger(func(uint64) { calls = append(calls, "first") })
	clock.Advance(500 * time.Millisecond)
	d.Trigger(func(uint64) { calls = append(calls, "second") })
	clock.Advance(500 * time.Millisecond)
	last := d.Trigger(func(uint64) { calls = append(calls, "third") })
	clock.Advance(time.Second)

	assert.Equal(t, []string{"third"}, calls)
	assert.True(t, d.IsCurrent(last))
	assert.Zero(t, clock.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	clock := newManualClock()
	d := NewDebouncer(clock, time.Second)

	ran := false
	seq := d.Trigger(func(uint64) { ran = true })
	d.Cancel()
	clock.Advance(time.Minute)

	assert.False(t, ran)
	assert.False(t, d.IsCurrent(seq))
}

func TestDebouncer_SupersededAfterFiring(t *testing.T) {
	clock := newManualClock()
	d := NewDebouncer(clock, time.Second)

	var inFlight uint64
	d.Trigger(func(s uint64) { inFlight = s })
	clock.Advance(time.Second)
	require.NotZero(t, inFlight)

	// A newer call while the first is still being processed.
	d.Trigger(func(uint64) {})

	assert.False(t, d.IsCurrent(inFlight))
}

func TestDebouncer_WallClock(t *testing.T) {
	d := NewDebouncer(nil, 10*time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)
	d.Trigger(func(uint64) { wg.Done() })

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call did not run")
	}
	assert.Equal(t, 10*time.Millisecond, d.Window())
}

func TestSystemClock(t *testing.T) {
	clock := SystemClock()

	before := time.Now()
	assert.False(t, clock.Now().Before(before))

	timer := clock.AfterFunc(time.Hour, func() {})
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
}
