package services

import (
	"time"

	"github.com/custodia-labs/skycast/internal/core/ports/driven"
)

// Ensure systemClock implements the interface.
var _ driven.Clock = systemClock{}

// systemClock schedules callbacks on the wall clock.
type systemClock struct{}

// SystemClock returns a Clock backed by the time package.
func SystemClock() driven.Clock {
	return systemClock{}
}

// AfterFunc schedules f using time.AfterFunc.
func (systemClock) AfterFunc(d time.Duration, f func()) driven.Timer {
	return time.AfterFunc(d, f)
}

// Now returns the current local time.
func (systemClock) Now() time.Time {
	return time.Now()
}
