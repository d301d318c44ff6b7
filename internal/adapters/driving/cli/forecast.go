package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/logger"
)

var (
	forecastDays     int
	forecastJSON     bool
	forecastRemember bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast [city]",
	Short: "Show the forecast for a city",
	Long: `Shows current conditions and the daily forecast.

Without a city, the last city chosen in the interactive UI is used,
falling back to the configured default city.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().IntVarP(&forecastDays, "days", "d", 0, "number of forecast days (1-10, default from settings)")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "output the forecast as JSON")
	forecastCmd.Flags().BoolVar(&forecastRemember, "remember", false, "save the city as the last city")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	if weatherService == nil {
		return errWeatherNotConfigured
	}

	city := ""
	if len(args) > 0 {
		city = strings.TrimSpace(args[0])
	}

	logger.Section("Forecast")
	bundle, err := weatherService.Forecast(cmd.Context(), city, forecastDays)
	if err != nil {
		printHint(cmd, err)
		return fmt.Errorf("forecast failed: %w", err)
	}
	logger.Info("forecast for %s with %d days", bundle.Location.Name, len(bundle.Daily))

	if forecastRemember && city != "" {
		name := bundle.Location.Name
		if name == "" {
			name = city
		}
		if err := weatherService.Remember(cmd.Context(), name); err != nil {
			cmd.PrintErrf("Warning: could not save last city: %v\n", err)
		}
	}

	if forecastJSON {
		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal forecast: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printForecast(cmd, bundle)
	return nil
}

func printForecast(cmd *cobra.Command, bundle *domain.ForecastBundle) {
	loc := bundle.Location
	if loc.Country != "" {
		cmd.Printf("%s, %s\n", loc.Name, loc.Country)
	} else {
		cmd.Println(loc.Name)
	}
	cmd.Println()

	cur := bundle.Current
	cmd.Printf("  %s  %g°C  %s\n", styles.ConditionIcon(cur.ConditionText), cur.TempC, cur.ConditionText)
	cmd.Printf("  Feels like %g°C\n", cur.FeelsLikeC)
	cmd.Printf("  Wind: %gkm  Humidity: %d%%", cur.WindKph, cur.Humidity)
	if today := bundle.Today(); today != nil && today.Astro.Sunrise != "" {
		cmd.Printf("  Sunrise: %s", today.Astro.Sunrise)
	}
	cmd.Println()

	if len(bundle.Daily) == 0 {
		return
	}

	cmd.Println()
	cmd.Println("Daily forecast:")
	for _, day := range bundle.Daily {
		name := day.Weekday()
		if name == "" {
			name = day.Date
		}
		cmd.Printf("  %-10s %s  %5.1f°  (%g° / %g°)  %s\n",
			name,
			styles.ConditionIcon(day.ConditionText),
			day.AvgTempC,
			day.MinTempC,
			day.MaxTempC,
			day.ConditionText,
		)
	}
}
