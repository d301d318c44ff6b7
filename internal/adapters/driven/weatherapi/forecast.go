package weatherapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
)

// Ensure ForecastClient implements the interface.
var _ driven.ForecastSource = (*ForecastClient)(nil)

// condition is the nested condition object used throughout the payload.
type condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// forecastResponse is the forecast.json response format.
type forecastResponse struct {
	Location struct {
		Name      string `json:"name"`
		Region    string `json:"region"`
		Country   string `json:"country"`
		LocalTime string `json:"localtime"`
	} `json:"location"`
	Current struct {
		TempC       float64   `json:"temp_c"`
		FeelsLikeC  float64   `json:"feelslike_c"`
		WindKph     float64   `json:"wind_kph"`
		Humidity    int       `json:"humidity"`
		IsDay       int       `json:"is_day"`
		LastUpdated string    `json:"last_updated"`
		Condition   condition `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				AvgTempC          float64   `json:"avgtemp_c"`
				MaxTempC          float64   `json:"maxtemp_c"`
				MinTempC          float64   `json:"mintemp_c"`
				DailyChanceOfRain int       `json:"daily_chance_of_rain"`
				Condition         condition `json:"condition"`
			} `json:"day"`
			Astro struct {
				Sunrise  string `json:"sunrise"`
				Sunset   string `json:"sunset"`
				Moonrise string `json:"moonrise"`
				Moonset  string `json:"moonset"`
			} `json:"astro"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// ForecastClient fetches multi-day forecasts.
type ForecastClient struct {
	client *Client
	now    func() time.Time
}

// NewForecastClient creates a forecast client.
func NewForecastClient(client *Client) *ForecastClient {
	return &ForecastClient{
		client: client,
		now:    time.Now,
	}
}

// FetchForecast fetches current conditions and a daily forecast for city.
func (f *ForecastClient) FetchForecast(ctx context.Context, city string, days int) (*domain.ForecastBundle, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: empty city", domain.ErrInvalidInput)
	}
	if !domain.ValidForecastDays(days) {
		return nil, fmt.Errorf("%w: days must be between %d and %d, got %d",
			domain.ErrInvalidInput, domain.MinForecastDays, domain.MaxForecastDays, days)
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("days", strconv.Itoa(days))
	params.Set("aqi", "no")
	params.Set("alerts", "no")

	var resp forecastResponse
	if err := f.client.get(ctx, "/forecast.json", params, &resp); err != nil {
		return nil, fmt.Errorf("forecast %q: %w", city, err)
	}

	return f.toBundle(city, &resp)
}

// toBundle validates the payload and maps it to the domain model.
func (f *ForecastClient) toBundle(city string, resp *forecastResponse) (*domain.ForecastBundle, error) {
	if resp.Location.Name == "" {
		return nil, fmt.Errorf("%w: forecast %q: missing location", domain.ErrParse, city)
	}
	if len(resp.Forecast.ForecastDay) == 0 {
		return nil, fmt.Errorf("%w: forecast %q: no forecast days", domain.ErrParse, city)
	}

	bundle := &domain.ForecastBundle{
		Current: domain.CurrentConditions{
			TempC:         resp.Current.TempC,
			FeelsLikeC:    resp.Current.FeelsLikeC,
			ConditionText: resp.Current.Condition.Text,
			WindKph:       resp.Current.WindKph,
			Humidity:      resp.Current.Humidity,
			IsDay:         resp.Current.IsDay == 1,
			LastUpdated:   resp.Current.LastUpdated,
		},
		Location: domain.LocationInfo{
			Name:      resp.Location.Name,
			Region:    resp.Location.Region,
			Country:   resp.Location.Country,
			LocalTime: resp.Location.LocalTime,
		},
		Daily:     make([]domain.DailyForecast, 0, len(resp.Forecast.ForecastDay)),
		FetchedAt: f.now(),
	}

	for _, day := range resp.Forecast.ForecastDay {
		bundle.Daily = append(bundle.Daily, domain.DailyForecast{
			Date:          day.Date,
			AvgTempC:      day.Day.AvgTempC,
			MaxTempC:      day.Day.MaxTempC,
			MinTempC:      day.Day.MinTempC,
			ConditionText: day.Day.Condition.Text,
			ChanceOfRain:  day.Day.DailyChanceOfRain,
			Astro: domain.Astro{
				Sunrise:  day.Astro.Sunrise,
				Sunset:   day.Astro.Sunset,
				Moonrise: day.Astro.Moonrise,
				Moonset:  day.Astro.Moonset,
			},
		})
	}

	return bundle, nil
}
