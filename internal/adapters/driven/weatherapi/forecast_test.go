package weatherapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skycast/internal/core/domain"
)

const londonForecastJSON = `{
  "location": {"name":"London","region":"City of London, Greater London","country":"United Kingdom","localtime":"2026-10-17 09:30"},
  "current": {
    "last_updated":"2026-10-17 09:15","temp_c":12.4,"feelslike_c":10.9,"is_day":1,
    "condition":{"text":"Partly cloudy","icon":"//cdn.weatherapi.com/weather/64x64/day/116.png","code":1003},
    "wind_kph":14.8,"humidity":77
  },
  "forecast": {"forecastday": [
    {"date":"2026-10-17","day":{"maxtemp_c":15.1,"mintemp_c":8.2,"avgtemp_c":11.7,"daily_chance_of_rain":20,"condition":{"text":"Sunny","code":1000}},
     "astro":{"sunrise":"07:22 AM","sunset":"06:03 PM","moonrise":"05:40 AM","moonset":"05:12 PM"}},
    {"date":"2026-10-18","day":{"maxtemp_c":13.0,"mintemp_c":9.4,"avgtemp_c":11.0,"daily_chance_of_rain":86,"condition":{"text":"Patchy rain nearby","code":1063}},
     "astro":{"sunrise":"07:24 AM","sunset":"06:01 PM","moonrise":"06:51 AM","moonset":"05:31 PM"}}
  ]}
}`

func TestForecastClient_FetchForecast(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/forecast.json", r.URL.Path)
		assert.Equal(t, "London", q.Get("q"))
		assert.Equal(t, "7", q.Get("days"))
		assert.Equal(t, "no", q.Get("aqi"))
		assert.Equal(t, "no", q.Get("alerts"))
		_, _ = w.Write([]byte(londonForecastJSON))
	})
	fetchedAt := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	client := NewForecastClient(c)
	client.now = func() time.Time { return fetchedAt }

	bundle, err := client.FetchForecast(context.Background(), "London", 7)

	require.NoError(t, err)
	assert.Equal(t, domain.LocationInfo{
		Name:      "London",
		Region:    "City of London, Greater London",
		Country:   "United Kingdom",
		LocalTime: "2026-10-17 09:30",
	}, bundle.Location)
	assert.Equal(t, domain.CurrentConditions{
		TempC:         12.4,
		FeelsLikeC:    10.9,
		ConditionText: "Partly cloudy",
		WindKph:       14.8,
		Humidity:      77,
		IsDay:         true,
		LastUpdated:   "2026-10-17 09:15",
	}, bundle.Current)
	require.Len(t, bundle.Daily, 2)
	assert.Equal(t, "Saturday", bundle.Daily[0].Weekday())
	assert.Equal(t, "07:22 AM", bundle.Today().Astro.Sunrise)
	assert.Equal(t, 86, bundle.Daily[1].ChanceOfRain)
	assert.Equal(t, "Patchy rain nearby", bundle.Daily[1].ConditionText)
	assert.InDelta(t, 11.0, bundle.Daily[1].AvgTempC, 1e-9)
	assert.Equal(t, fetchedAt, bundle.FetchedAt)
}

func TestForecastClient_FetchForecast_UnknownConditionPassesThrough(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"location":{"name":"Rewari"},"current":{"condition":{"text":"Volcanic ash"}},
			"forecast":{"forecastday":[{"date":"2026-10-17","day":{"condition":{"text":"Volcanic ash"}}}]}}`))
	})

	bundle, err := NewForecastClient(c).FetchForecast(context.Background(), "Rewari", 1)

	require.NoError(t, err)
	assert.Equal(t, "Volcanic ash", bundle.Current.ConditionText)
	assert.Equal(t, "Volcanic ash", bundle.Daily[0].ConditionText)
}

func TestForecastClient_FetchForecast_InvalidInput(t *testing.T) {
	client := NewForecastClient(NewClient(Config{APIKey: "k"}))

	tests := []struct {
		name string
		city string
		days int
	}{
		{name: "empty city", city: " ", days: 7},
		{name: "zero days", city: "Paris", days: 0},
		{name: "too many days", city: "Paris", days: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.FetchForecast(context.Background(), tt.city, tt.days)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestForecastClient_FetchForecast_EmptyPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "no location name", body: `{"location":{},"forecast":{"forecastday":[{"date":"2026-10-17"}]}}`},
		{name: "no forecast days", body: `{"location":{"name":"Paris"},"forecast":{"forecastday":[]}}`},
		{name: "bad json", body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			bundle, err := NewForecastClient(c).FetchForecast(context.Background(), "Paris", 7)

			assert.Nil(t, bundle)
			assert.ErrorIs(t, err, domain.ErrParse)
		})
	}
}

func TestForecastClient_FetchForecast_NoMatchingLocation(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	})

	_, err := NewForecastClient(c).FetchForecast(context.Background(), "Atlantis", 7)

	assert.ErrorIs(t, err, domain.ErrNoMatch)
	assert.True(t, IsNoMatch(err))
	assert.Equal(t, domain.ErrorKindEmptyResult, domain.KindOf(err))
}
