package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skycast/internal/core/domain"
)

func newTestWeatherService() (*WeatherService, *fakeSearcher, *fakeForecasts, *flakyStore) {
	searcher := newFakeSearcher()
	forecasts := newFakeForecasts()
	store := newFlakyStore()
	return NewWeatherService(searcher, forecasts, store, domain.ForecastSettings{}), searcher, forecasts, store
}

func TestNewWeatherService_Defaults(t *testing.T) {
	service, _, _, _ := newTestWeatherService()

	assert.Equal(t, domain.DefaultForecastDays, service.settings.Days)
	assert.Equal(t, domain.DefaultCity, service.settings.DefaultCity)
}

func TestWeatherService_SearchLocations(t *testing.T) {
	service, searcher, _, _ := newTestWeatherService()
	searcher.results["Lon"] = []domain.Candidate{londonUK, londonCA}

	candidates, err := service.SearchLocations(context.Background(), " Lon ")

	require.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, []string{"Lon"}, searcher.Calls())
}

func TestWeatherService_SearchLocations_NoMatches(t *testing.T) {
	service, _, _, _ := newTestWeatherService()

	candidates, err := service.SearchLocations(context.Background(), "Xyzzy")

	require.NoError(t, err)
	assert.NotNil(t, candidates)
	assert.Empty(t, candidates)
}

func TestWeatherService_SearchLocations_Errors(t *testing.T) {
	service, searcher, _, _ := newTestWeatherService()

	_, err := service.SearchLocations(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	searcher.err = fmt.Errorf("%w: refused", domain.ErrNetwork)
	_, err = service.SearchLocations(context.Background(), "Lon")
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestWeatherService_Forecast_CityResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit city", func(t *testing.T) {
		service, _, forecasts, _ := newTestWeatherService()

		bundle, err := service.Forecast(ctx, "Paris", 3)

		require.NoError(t, err)
		assert.Equal(t, "Paris", bundle.Location.Name)
		assert.Equal(t, []int{3}, forecasts.days)
	})

	t.Run("persisted city", func(t *testing.T) {
		service, _, forecasts, store := newTestWeatherService()
		require.NoError(t, store.Set(ctx, domain.PersistedCityKey, "London"))

		_, err := service.Forecast(ctx, "", 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"London"}, forecasts.Calls())
		assert.Equal(t, []int{domain.DefaultForecastDays}, forecasts.days)
	})

	t.Run("default city", func(t *testing.T) {
		service, _, forecasts, _ := newTestWeatherService()

		_, err := service.Forecast(ctx, "", 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"Rewari"}, forecasts.Calls())
	})

	t.Run("transient store failure is retried", func(t *testing.T) {
		service, _, _, store := newTestWeatherService()
		require.NoError(t, store.Set(ctx, domain.PersistedCityKey, "London"))
		store.getFails = 1

		bundle, err := service.Forecast(ctx, "", 0)

		require.NoError(t, err)
		assert.Equal(t, "London", bundle.Location.Name)
		assert.Equal(t, 2, store.GetCalls())
	})

	t.Run("persistent store failure falls back to default city", func(t *testing.T) {
		service, _, forecasts, store := newTestWeatherService()
		require.NoError(t, store.Set(ctx, domain.PersistedCityKey, "London"))
		store.getFails = 5

		bundle, err := service.Forecast(ctx, "", 0)

		require.NoError(t, err)
		assert.Equal(t, "Rewari", bundle.Location.Name)
		assert.Equal(t, []string{"Rewari"}, forecasts.Calls())
		assert.Equal(t, 2, store.GetCalls())
	})
}

func TestWeatherService_Forecast_InvalidDays(t *testing.T) {
	service, _, forecasts, _ := newTestWeatherService()

	for _, days := range []int{-1, 11, 30} {
		_, err := service.Forecast(context.Background(), "Paris", days)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "days=%d", days)
	}
	assert.Empty(t, forecasts.Calls())
}

func TestWeatherService_Forecast_Errors(t *testing.T) {
	service, _, forecasts, _ := newTestWeatherService()

	forecasts.SetErr("Paris", fmt.Errorf("%w: 503", domain.ErrNetwork))
	_, err := service.Forecast(context.Background(), "Paris", 7)
	assert.ErrorIs(t, err, domain.ErrNetwork)

	forecasts.nilFor["Oslo"] = true
	_, err = service.Forecast(context.Background(), "Oslo", 7)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestWeatherService_RememberAndForget(t *testing.T) {
	ctx := context.Background()
	service, _, _, _ := newTestWeatherService()

	_, ok, err := service.LastCity(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, service.Remember(ctx, " Lisbon "))

	city, ok, err := service.LastCity(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Lisbon", city)

	require.NoError(t, service.Forget(ctx))

	_, ok, err = service.LastCity(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWeatherService_Remember_Errors(t *testing.T) {
	ctx := context.Background()
	service, _, _, store := newTestWeatherService()

	assert.ErrorIs(t, service.Remember(ctx, ""), domain.ErrInvalidInput)

	store.setFails = 1
	assert.ErrorIs(t, service.Remember(ctx, "Lisbon"), domain.ErrPersistence)
}

func TestWeatherService_NilStore(t *testing.T) {
	ctx := context.Background()
	service := NewWeatherService(newFakeSearcher(), newFakeForecasts(), nil, domain.ForecastSettings{})

	_, ok, err := service.LastCity(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, service.Forget(ctx))
	assert.ErrorIs(t, service.Remember(ctx, "Lisbon"), domain.ErrPersistence)
}
