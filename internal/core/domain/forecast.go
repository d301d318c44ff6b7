package domain

import "time"

// MinForecastDays and MaxForecastDays bound the forecast horizon accepted
// by the weather API.
const (
	MinForecastDays = 1
	MaxForecastDays = 10
)

// ValidForecastDays reports whether days is within the accepted horizon.
func ValidForecastDays(days int) bool {
	return days >= MinForecastDays && days <= MaxForecastDays
}

// CurrentConditions holds the observed weather at fetch time.
type CurrentConditions struct {
	TempC         float64 `json:"temp_c"`
	FeelsLikeC    float64 `json:"feelslike_c"`
	ConditionText string  `json:"condition"`
	WindKph       float64 `json:"wind_kph"`
	Humidity      int     `json:"humidity"`
	IsDay         bool    `json:"is_day"`
	LastUpdated   string  `json:"last_updated,omitempty"`
}

// LocationInfo is the resolved location echoed back by the forecast source.
type LocationInfo struct {
	Name      string `json:"name"`
	Region    string `json:"region,omitempty"`
	Country   string `json:"country"`
	LocalTime string `json:"localtime,omitempty"`
}

// Astro holds sun and moon times for a forecast day, as local clock strings.
type Astro struct {
	Sunrise  string `json:"sunrise"`
	Sunset   string `json:"sunset"`
	Moonrise string `json:"moonrise"`
	Moonset  string `json:"moonset"`
}

// DailyForecast is a single day of the forecast.
type DailyForecast struct {
	// Date is the calendar day in the location's time zone (YYYY-MM-DD).
	Date string `json:"date"`

	AvgTempC      float64 `json:"avgtemp_c"`
	MaxTempC      float64 `json:"maxtemp_c"`
	MinTempC      float64 `json:"mintemp_c"`
	ConditionText string  `json:"condition"`
	ChanceOfRain  int     `json:"chance_of_rain"`
	Astro         Astro   `json:"astro"`
}

// Weekday returns the long weekday name for the forecast date,
// or an empty string when the date cannot be parsed.
func (d DailyForecast) Weekday() string {
	t, err := time.Parse(time.DateOnly, d.Date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// ForecastBundle is current conditions plus an ordered daily forecast.
// It is immutable once fetched and replaced wholesale on the next fetch.
type ForecastBundle struct {
	Current   CurrentConditions `json:"current"`
	Location  LocationInfo      `json:"location"`
	Daily     []DailyForecast   `json:"daily"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// Today returns the first forecast day, or nil when the forecast is empty.
func (b *ForecastBundle) Today() *DailyForecast {
	if b == nil || len(b.Daily) == 0 {
		return nil
	}
	return &b.Daily[0]
}
