// Package tui provides an interactive terminal user interface for skycast.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/skycast/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Resolver turns keystrokes into a selection and forecast.
	Resolver driving.TypeaheadResolver

	// Settings exposes application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(resolver driving.TypeaheadResolver, settings driving.SettingsService) *Ports {
	return &Ports{
		Resolver: resolver,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	return nil
}
