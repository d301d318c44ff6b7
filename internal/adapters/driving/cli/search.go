package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/logger"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for matching cities",
	Long: `Looks up cities whose name matches the query, as the interactive
typeahead does, and prints them with their region and coordinates.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output candidates as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if weatherService == nil {
		return errWeatherNotConfigured
	}

	logger.Section("Search")
	candidates, err := weatherService.SearchLocations(cmd.Context(), args[0])
	if err != nil {
		printHint(cmd, err)
		return fmt.Errorf("search failed: %w", err)
	}
	logger.Info("%d candidates for %q", len(candidates), args[0])

	if searchJSON {
		return outputSearchJSON(cmd, candidates)
	}

	return outputSearchTable(cmd, candidates)
}

func outputSearchJSON(cmd *cobra.Command, candidates []domain.Candidate) error {
	data, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal candidates: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, candidates []domain.Candidate) error {
	if len(candidates) == 0 {
		cmd.Println("No matching cities.")
		return nil
	}

	cmd.Println("Cities:")
	cmd.Println()
	for i, c := range candidates {
		cmd.Printf("  [%d] %s\n", i+1, c.Label())
		if c.Region != "" {
			cmd.Printf("      Region: %s\n", c.Region)
		}
		cmd.Printf("      Coordinates: %.2f, %.2f\n", c.Latitude, c.Longitude)
	}

	return nil
}
