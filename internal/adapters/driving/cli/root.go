// Package cli provides the cobra command tree for skycast.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driving"
	"github.com/custodia-labs/skycast/internal/logger"
)

var (
	// version is set by SetVersion, usually from build flags.
	version = "dev"

	// verbose enables debug logging for every command.
	verbose bool

	weatherService  driving.WeatherService
	settingsService driving.SettingsService
)

// errWeatherNotConfigured is returned when a command runs without services.
var errWeatherNotConfigured = errors.New("weather service not configured")

// errSettingsNotConfigured is returned when settings commands run without services.
var errSettingsNotConfigured = errors.New("settings service not configured")

var rootCmd = &cobra.Command{
	Use:   "skycast",
	Short: "Terminal weather with city typeahead",
	Long: `skycast shows current conditions and a multi-day forecast in the terminal.

Start typing a city in the interactive UI and pick a match; the last city
you chose is remembered for the next start.

Run 'skycast tui' for the interactive screen or use the one-shot commands.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the services used by the one-shot commands.
func SetServices(weather driving.WeatherService, settings driving.SettingsService) {
	weatherService = weather
	settingsService = settings
}

// SetVersion sets the version reported by 'skycast version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// printHint suggests a next step for weather errors the user can act on.
func printHint(cmd *cobra.Command, err error) {
	switch domain.KindOf(err) {
	case domain.ErrorKindAuth:
		cmd.PrintErrln("Hint: set SKYCAST_API_KEY or run 'skycast settings wizard' to store a WeatherAPI key.")
	case domain.ErrorKindQuota:
		cmd.PrintErrln("Hint: the WeatherAPI quota for this key is used up. Try again later or set another key.")
	case domain.ErrorKindEmptyResult:
		cmd.PrintErrln("Hint: use 'skycast search <name>' to find the exact city name.")
	}
}
