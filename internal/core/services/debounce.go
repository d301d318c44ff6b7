package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/skycast/internal/core/ports/driven"
)

// Debouncer runs only the most recent call after a quiet window.
//
// Every Trigger or Cancel bumps a sequence number. The scheduled callback
// receives the sequence it was scheduled with, and callers use IsCurrent to
// discard work that a newer call has superseded, including responses that
// arrive after the timer fired.
type Debouncer struct {
	clock  driven.Clock
	window time.Duration

	mu    sync.Mutex
	seq   uint64
	timer driven.Timer
}

// NewDebouncer creates a debouncer with the given quiet window.
// A nil clock uses the wall clock.
func NewDebouncer(clock driven.Clock, window time.Duration) *Debouncer {
	if clock == nil {
		clock = SystemClock()
	}
	return &Debouncer{
		clock:  clock,
		window: window,
	}
}

// Trigger supersedes any pending call and schedules fn to run after the
// quiet window. It returns the sequence number passed to fn.
func (d *Debouncer) Trigger(fn func(seq uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.seq++
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.window, func() {
		if d.IsCurrent(seq) {
			fn(seq)
		}
	})
	return seq
}

// Cancel supersedes any pending or in-flight call without scheduling a new one.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.seq++
}

// IsCurrent reports whether seq belongs to the most recent call.
func (d *Debouncer) IsCurrent(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.seq
}

// Window returns the quiet window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// stopLocked stops the pending timer (caller must hold lock).
func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
