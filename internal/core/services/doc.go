// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Resolver is the heart of Skycast: it debounces search input,
// guards against stale responses with sequence numbers and keeps the
// last good forecast on screen when a refresh fails.
package services
