package domain

import "time"

// Default configuration values.
const (
	DefaultAPIBaseURL        = "https://api.weatherapi.com/v1"
	DefaultAPITimeout        = 10 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultLanguage          = "en"
	DefaultMaxCandidates     = 10
	DefaultMinQueryLength    = 3
	DefaultQuietWindow       = 2200 * time.Millisecond
	DefaultCandidateCacheTTL = 10 * time.Minute
	DefaultForecastDays      = 7
	DefaultCity              = "Rewari"

	// PersistedCityKey is the key-value store key holding the last city.
	PersistedCityKey = "city"
)

// APISettings configures the weather API adapters.
type APISettings struct {
	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey authenticates requests.
	APIKey string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (can be fractional).
	RequestsPerSecond float64
}

// IsConfigured returns true if the API can be called.
func (a APISettings) IsConfigured() bool {
	return a.BaseURL != "" && a.APIKey != ""
}

// SearchSettings holds typeahead behaviour configuration.
type SearchSettings struct {
	// Language is the fixed locale sent with every search.
	Language string

	// MaxCandidates caps the number of candidates returned per query.
	MaxCandidates int

	// MinQueryLength is the shortest query that triggers a network call.
	MinQueryLength int

	// QuietWindow is the debounce delay after the last keystroke.
	QuietWindow time.Duration

	// CacheTTL is how long candidate lists are reused for identical queries.
	CacheTTL time.Duration
}

// ForecastSettings holds forecast fetch configuration.
type ForecastSettings struct {
	// Days is the forecast horizon.
	Days int

	// DefaultCity is used on cold start when no city has been persisted.
	DefaultCity string

	// RetainOnFailure keeps the last forecast on screen when a refresh fails.
	RetainOnFailure bool
}

// AppSettings holds all user-configurable application settings.
type AppSettings struct {
	API      APISettings
	Search   SearchSettings
	Forecast ForecastSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:           DefaultAPIBaseURL,
			Timeout:           DefaultAPITimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Search: SearchSettings{
			Language:       DefaultLanguage,
			MaxCandidates:  DefaultMaxCandidates,
			MinQueryLength: DefaultMinQueryLength,
			QuietWindow:    DefaultQuietWindow,
			CacheTTL:       DefaultCandidateCacheTTL,
		},
		Forecast: ForecastSettings{
			Days:            DefaultForecastDays,
			DefaultCity:     DefaultCity,
			RetainOnFailure: true,
		},
	}
}
