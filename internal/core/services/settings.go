package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
	"github.com/custodia-labs/skycast/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIBaseURL        = "api.base_url"
	keyAPIKey            = "api.key"
	keyAPITimeout        = "api.timeout_seconds"
	keyAPIRequestsPerSec = "api.requests_per_second"
	keySearchLanguage    = "search.language"
	keySearchMaxResults  = "search.max_candidates"
	keySearchDebounce    = "search.debounce_ms"
	keySearchCacheTTL    = "search.cache_ttl_seconds"
	keyForecastDays      = "forecast.days"
	keyForecastCity      = "forecast.default_city"
	keyForecastRetain    = "forecast.retain_on_failure"
)

// settingKeys lists every recognised key in display order.
var settingKeys = []string{
	keyAPIBaseURL,
	keyAPIKey,
	keyAPITimeout,
	keyAPIRequestsPerSec,
	keySearchLanguage,
	keySearchMaxResults,
	keySearchDebounce,
	keySearchCacheTTL,
	keyForecastDays,
	keyForecastCity,
	keyForecastRetain,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:           s.getString(keyAPIBaseURL, defaults.API.BaseURL),
			APIKey:            s.configStore.GetString(keyAPIKey),
			Timeout:           s.getSeconds(keyAPITimeout, defaults.API.Timeout),
			RequestsPerSecond: s.getFloat(keyAPIRequestsPerSec, defaults.API.RequestsPerSecond),
		},
		Search: domain.SearchSettings{
			Language:       s.getString(keySearchLanguage, defaults.Search.Language),
			MaxCandidates:  s.getInt(keySearchMaxResults, defaults.Search.MaxCandidates),
			MinQueryLength: defaults.Search.MinQueryLength,
			QuietWindow:    s.getMillis(keySearchDebounce, defaults.Search.QuietWindow),
			CacheTTL:       s.getSeconds(keySearchCacheTTL, defaults.Search.CacheTTL),
		},
		Forecast: domain.ForecastSettings{
			Days:            s.getDays(defaults.Forecast.Days),
			DefaultCity:     s.getString(keyForecastCity, defaults.Forecast.DefaultCity),
			RetainOnFailure: s.getBool(keyForecastRetain, defaults.Forecast.RetainOnFailure),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save API settings
	if err := s.configStore.Set(keyAPIBaseURL, settings.API.BaseURL); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if settings.API.APIKey != "" {
		if err := s.configStore.Set(keyAPIKey, settings.API.APIKey); err != nil {
			return fmt.Errorf("save api key: %w", err)
		}
	}
	if err := s.configStore.Set(keyAPITimeout, int(settings.API.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}
	if err := s.configStore.Set(keyAPIRequestsPerSec, settings.API.RequestsPerSecond); err != nil {
		return fmt.Errorf("save api requests_per_second: %w", err)
	}

	// Save search settings
	if err := s.configStore.Set(keySearchLanguage, settings.Search.Language); err != nil {
		return fmt.Errorf("save search language: %w", err)
	}
	if err := s.configStore.Set(keySearchMaxResults, settings.Search.MaxCandidates); err != nil {
		return fmt.Errorf("save search max_candidates: %w", err)
	}
	if err := s.configStore.Set(keySearchDebounce, int(settings.Search.QuietWindow/time.Millisecond)); err != nil {
		return fmt.Errorf("save search debounce: %w", err)
	}
	if err := s.configStore.Set(keySearchCacheTTL, int(settings.Search.CacheTTL/time.Second)); err != nil {
		return fmt.Errorf("save search cache_ttl: %w", err)
	}

	// Save forecast settings
	if err := s.configStore.Set(keyForecastDays, settings.Forecast.Days); err != nil {
		return fmt.Errorf("save forecast days: %w", err)
	}
	if err := s.configStore.Set(keyForecastCity, settings.Forecast.DefaultCity); err != nil {
		return fmt.Errorf("save forecast default_city: %w", err)
	}
	if err := s.configStore.Set(keyForecastRetain, settings.Forecast.RetainOnFailure); err != nil {
		return fmt.Errorf("save forecast retain_on_failure: %w", err)
	}

	return nil
}

// Overridden reports whether key is shadowed by an environment variable.
func (s *SettingsService) Overridden(key string) bool {
	return s.configStore.Overridden(strings.ToLower(strings.TrimSpace(key)))
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// parseSetting converts a raw string into the typed value stored for key.
func parseSetting(key, value string) (any, error) {
	switch key {
	case keyAPIBaseURL:
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return nil, fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrInvalidInput, key)
		}
		return strings.TrimRight(value, "/"), nil

	case keyAPIKey, keySearchLanguage, keyForecastCity:
		if value == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		return value, nil

	case keyAPITimeout, keySearchMaxResults, keySearchDebounce, keySearchCacheTTL:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil

	case keyForecastDays:
		n, err := strconv.Atoi(value)
		if err != nil || !domain.ValidForecastDays(n) {
			return nil, fmt.Errorf("%w: %s must be between %d and %d",
				domain.ErrInvalidInput, key, domain.MinForecastDays, domain.MaxForecastDays)
		}
		return n, nil

	case keyAPIRequestsPerSec:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		return f, nil

	case keyForecastRetain:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil

	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
}

// Keys returns the recognised config keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Validate checks if current settings allow calling the weather API.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.API.APIKey == "" {
		return fmt.Errorf("%w: set %s or the SKYCAST_API_KEY environment variable",
			domain.ErrMissingAPIKey, keyAPIKey)
	}
	if !settings.API.IsConfigured() {
		return fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, keyAPIBaseURL)
	}
	if !domain.ValidForecastDays(settings.Forecast.Days) {
		return fmt.Errorf("%w: %s out of range: %d", domain.ErrInvalidInput, keyForecastDays, settings.Forecast.Days)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getDays(defaultVal int) int {
	val := s.configStore.GetInt(keyForecastDays)
	if !domain.ValidForecastDays(val) {
		return defaultVal
	}
	return val
}
