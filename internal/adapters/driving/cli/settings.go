package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/skycast/internal/core/domain"
)

// settingsInput is the reader used by the wizard. Tests replace it.
var settingsInput io.Reader = os.Stdin

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the weather API, typeahead and forecast settings.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by its dotted key, for example:

  skycast settings set forecast.default_city London
  skycast settings set search.debounce_ms 1500

Run 'skycast settings keys' to list every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the API key, default city and forecast length.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	switch {
	case settings.API.APIKey != "" && settingsService.Overridden("api.key"):
		cmd.Printf("  API Key: %s (from environment)\n", maskAPIKey(settings.API.APIKey))
	case settings.API.APIKey != "":
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.API.APIKey))
	default:
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Printf("  Requests per second: %g\n", settings.API.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Language: %s\n", settings.Search.Language)
	cmd.Printf("  Max candidates: %d\n", settings.Search.MaxCandidates)
	cmd.Printf("  Minimum query length: %d\n", settings.Search.MinQueryLength)
	cmd.Printf("  Debounce: %s\n", settings.Search.QuietWindow)
	cmd.Printf("  Cache TTL: %s\n", settings.Search.CacheTTL)
	cmd.Println()

	cmd.Println("[Forecast]")
	cmd.Printf("  Days: %d\n", settings.Forecast.Days)
	cmd.Printf("  Default city: %s\n", settings.Forecast.DefaultCity)
	cmd.Printf("  Keep last forecast on failure: %s\n", yesNo(settings.Forecast.RetainOnFailure))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'skycast settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if strings.EqualFold(strings.TrimSpace(key), "api.key") {
		shown = maskAPIKey(value)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	cmd.Printf("Set %s = %s\n", key, shown)
	if settingsService.Overridden(key) {
		cmd.Printf("Note: %s is currently set by the environment, which takes precedence.\n", key)
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("skycast Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(settingsInput)

	// Step 1: API key
	cmd.Println("Step 1: WeatherAPI key")
	cmd.Println("----------------------")
	if current.API.APIKey != "" {
		cmd.Printf("Current key: %s (press enter to keep)\n", maskAPIKey(current.API.APIKey))
	}
	cmd.Print("API key: ")
	if key := readPassword(reader); key != "" {
		if err := settingsService.Set("api.key", key); err != nil {
			return fmt.Errorf("failed to set API key: %w", err)
		}
	}
	cmd.Println()
	cmd.Println()

	// Step 2: default city
	cmd.Println("Step 2: Default city")
	cmd.Println("--------------------")
	cmd.Printf("Used when no city has been chosen yet [%s]: ", current.Forecast.DefaultCity)
	if city := readLine(reader); city != "" {
		if err := settingsService.Set("forecast.default_city", city); err != nil {
			return fmt.Errorf("failed to set default city: %w", err)
		}
	}
	cmd.Println()

	// Step 3: forecast length
	cmd.Println("Step 3: Forecast days")
	cmd.Println("---------------------")
	cmd.Printf("Number of days (%d-%d) [%d]: ", domain.MinForecastDays, domain.MaxForecastDays, current.Forecast.Days)
	days := parseChoice(readLine(reader), domain.MaxForecastDays, current.Forecast.Days)
	if err := settingsService.Set("forecast.days", strconv.Itoa(days)); err != nil {
		return fmt.Errorf("failed to set forecast days: %w", err)
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		return nil
	}
	cmd.Println("Settings saved.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal, otherwise a line.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(reader *bufio.Reader) string {
	if f, ok := settingsInput.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
