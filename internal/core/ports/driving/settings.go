package driving

import "github.com/custodia-labs/skycast/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key, validating the value.
	Set(key, value string) error

	// Keys returns the recognised config keys in display order.
	Keys() []string

	// Overridden reports whether key is supplied by the environment,
	// in which case Set has no visible effect until the variable is unset.
	Overridden(key string) bool

	// Validate checks if current settings allow calling the weather API.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
