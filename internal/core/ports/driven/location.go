package driven

import (
	"context"

	"github.com/custodia-labs/skycast/internal/core/domain"
)

// LocationSearcher resolves a partial city name into candidate locations.
type LocationSearcher interface {
	// Search returns the candidates matching query. The list is unordered
	// and may be empty; an empty list is not an error.
	Search(ctx context.Context, query string) ([]domain.Candidate, error)
}
