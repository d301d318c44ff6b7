package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cityCmd = &cobra.Command{
	Use:   "city",
	Short: "Manage the remembered city",
	Long: `The remembered city is the last city chosen in the interactive UI.
It is used on start-up and by 'skycast forecast' without arguments.`,
	RunE: runCityShow,
}

var cityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the remembered city",
	Args:  cobra.NoArgs,
	RunE:  runCityShow,
}

var citySetCmd = &cobra.Command{
	Use:   "set [city]",
	Short: "Remember a city without fetching its forecast",
	Args:  cobra.ExactArgs(1),
	RunE:  runCitySet,
}

var cityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the remembered city",
	Args:  cobra.NoArgs,
	RunE:  runCityClear,
}

func init() {
	cityCmd.AddCommand(cityShowCmd)
	cityCmd.AddCommand(citySetCmd)
	cityCmd.AddCommand(cityClearCmd)
	rootCmd.AddCommand(cityCmd)
}

func runCityShow(cmd *cobra.Command, _ []string) error {
	if weatherService == nil {
		return errWeatherNotConfigured
	}

	city, ok, err := weatherService.LastCity(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read last city: %w", err)
	}
	if !ok {
		cmd.Println("No city remembered; the default city is used.")
		return nil
	}

	cmd.Printf("Remembered city: %s\n", city)
	return nil
}

func runCitySet(cmd *cobra.Command, args []string) error {
	if weatherService == nil {
		return errWeatherNotConfigured
	}

	city := strings.TrimSpace(args[0])
	if err := weatherService.Remember(cmd.Context(), city); err != nil {
		return fmt.Errorf("failed to remember city: %w", err)
	}

	cmd.Printf("Remembered city: %s\n", city)
	return nil
}

func runCityClear(cmd *cobra.Command, _ []string) error {
	if weatherService == nil {
		return errWeatherNotConfigured
	}

	if err := weatherService.Forget(cmd.Context()); err != nil {
		return fmt.Errorf("failed to forget city: %w", err)
	}

	cmd.Println("Remembered city cleared.")
	return nil
}
