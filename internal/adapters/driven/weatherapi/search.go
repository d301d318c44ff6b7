package weatherapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
)

// Ensure SearchClient implements the interface.
var _ driven.LocationSearcher = (*SearchClient)(nil)

// searchResult is one entry of the search.json response.
type searchResult struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	URL     string  `json:"url"`
}

// SearchClient resolves partial city names into candidates.
type SearchClient struct {
	client     *Client
	language   string
	maxResults int
}

// NewSearchClient creates a location search client.
// Results are capped at maxResults; zero uses the default.
func NewSearchClient(client *Client, language string, maxResults int) *SearchClient {
	if language == "" {
		language = domain.DefaultLanguage
	}
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxCandidates
	}
	return &SearchClient{
		client:     client,
		language:   language,
		maxResults: maxResults,
	}
}

// Search returns candidates matching query. An empty list is a valid result.
func (s *SearchClient) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", s.language)

	var results []searchResult
	if err := s.client.get(ctx, "/search.json", params, &results); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	candidates := make([]domain.Candidate, 0, min(len(results), s.maxResults))
	for _, r := range results {
		if len(candidates) == s.maxResults {
			break
		}
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			ID:        r.ID,
			Name:      r.Name,
			Region:    r.Region,
			Country:   r.Country,
			Latitude:  r.Lat,
			Longitude: r.Lon,
			URL:       r.URL,
		})
	}

	return candidates, nil
}
