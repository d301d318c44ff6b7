package driven

import (
	"context"

	"github.com/custodia-labs/skycast/internal/core/domain"
)

// ForecastSource fetches weather for a resolved city name.
type ForecastSource interface {
	// FetchForecast returns current conditions and an ordered forecast of
	// the given number of days. Errors wrap domain.ErrNetwork, domain.ErrParse
	// or a more specific sentinel such as domain.ErrNoMatch.
	FetchForecast(ctx context.Context, city string, days int) (*domain.ForecastBundle, error)
}
