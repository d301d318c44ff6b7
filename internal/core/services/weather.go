package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
	"github.com/custodia-labs/skycast/internal/core/ports/driving"
)

// Ensure WeatherService implements the interface.
var _ driving.WeatherService = (*WeatherService)(nil)

// WeatherService provides one-shot weather operations for the CLI.
type WeatherService struct {
	searcher  driven.LocationSearcher
	forecasts driven.ForecastSource
	store     driven.KeyValueStore
	settings  domain.ForecastSettings
}

// NewWeatherService creates a new weather service.
func NewWeatherService(
	searcher driven.LocationSearcher,
	forecasts driven.ForecastSource,
	store driven.KeyValueStore,
	settings domain.ForecastSettings,
) *WeatherService {
	if settings.Days == 0 {
		settings.Days = domain.DefaultForecastDays
	}
	if settings.DefaultCity == "" {
		settings.DefaultCity = domain.DefaultCity
	}
	return &WeatherService{
		searcher:  searcher,
		forecasts: forecasts,
		store:     store,
		settings:  settings,
	}
}

// SearchLocations returns candidates for a partial city name.
func (s *WeatherService) SearchLocations(ctx context.Context, query string) ([]domain.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	candidates, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}
	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	return candidates, nil
}

// Forecast fetches the forecast for city over days.
func (s *WeatherService) Forecast(ctx context.Context, city string, days int) (*domain.ForecastBundle, error) {
	if days == 0 {
		days = s.settings.Days
	}
	if !domain.ValidForecastDays(days) {
		return nil, fmt.Errorf("%w: days must be between %d and %d, got %d",
			domain.ErrInvalidInput, domain.MinForecastDays, domain.MaxForecastDays, days)
	}

	city = strings.TrimSpace(city)
	if city == "" {
		last, ok := readLastCity(ctx, s.store)
		if !ok {
			last = s.settings.DefaultCity
		}
		city = last
	}

	bundle, err := s.forecasts.FetchForecast(ctx, city, days)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast for %q: %w", city, err)
	}
	if bundle == nil {
		return nil, fmt.Errorf("%w: empty forecast for %q", domain.ErrParse, city)
	}
	return bundle, nil
}

// LastCity returns the persisted city, if any.
func (s *WeatherService) LastCity(ctx context.Context) (string, bool, error) {
	if s.store == nil {
		return "", false, nil
	}
	city, ok, err := s.store.Get(ctx, domain.PersistedCityKey)
	if err != nil {
		return "", false, fmt.Errorf("%w: read last city: %w", domain.ErrPersistence, err)
	}
	if strings.TrimSpace(city) == "" {
		return "", false, nil
	}
	return city, ok, nil
}

// Remember persists city as the last selected city.
func (s *WeatherService) Remember(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return fmt.Errorf("%w: empty city", domain.ErrInvalidInput)
	}
	if s.store == nil {
		return fmt.Errorf("%w: no store configured", domain.ErrPersistence)
	}
	if err := s.store.Set(ctx, domain.PersistedCityKey, city); err != nil {
		return fmt.Errorf("%w: save last city: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Forget removes the persisted city.
func (s *WeatherService) Forget(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, domain.PersistedCityKey); err != nil {
		return fmt.Errorf("%w: forget last city: %w", domain.ErrPersistence, err)
	}
	return nil
}
