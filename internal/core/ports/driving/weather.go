package driving

import (
	"context"

	"github.com/custodia-labs/skycast/internal/core/domain"
)

// WeatherService provides one-shot weather operations to external actors.
type WeatherService interface {
	// SearchLocations returns candidates for a partial city name.
	SearchLocations(ctx context.Context, query string) ([]domain.Candidate, error)

	// Forecast fetches the forecast for city over days. An empty city falls
	// back to the persisted city, then the default city. A zero days uses
	// the configured horizon.
	Forecast(ctx context.Context, city string, days int) (*domain.ForecastBundle, error)

	// LastCity returns the persisted city, if any.
	LastCity(ctx context.Context) (string, bool, error)

	// Remember persists city as the last selected city.
	Remember(ctx context.Context, city string) error

	// Forget removes the persisted city.
	Forget(ctx context.Context) error
}
