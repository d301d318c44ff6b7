package cache

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
	"github.com/custodia-labs/skycast/internal/logger"
)

// Ensure LocationSearcher implements the interface.
var _ driven.LocationSearcher = (*LocationSearcher)(nil)

// LocationSearcher wraps a searcher and caches successful results by
// normalised query. Errors are never cached.
type LocationSearcher struct {
	next   driven.LocationSearcher
	cache  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64
	Misses int64
	Items  int
}

// NewLocationSearcher creates a caching searcher. A non-positive ttl uses
// the default.
func NewLocationSearcher(next driven.LocationSearcher, ttl time.Duration) *LocationSearcher {
	if ttl <= 0 {
		ttl = domain.DefaultCandidateCacheTTL
	}
	return &LocationSearcher{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Search returns cached candidates for query or delegates to the wrapped searcher.
func (s *LocationSearcher) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	key := cacheKey(query)

	if cached, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		logger.Debug("candidate cache hit for %q", key)
		return append([]domain.Candidate{}, cached.([]domain.Candidate)...), nil
	}
	s.misses.Add(1)

	candidates, err := s.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	stored := append([]domain.Candidate{}, candidates...)
	s.cache.SetDefault(key, stored)
	return candidates, nil
}

// Flush drops every cached entry.
func (s *LocationSearcher) Flush() {
	s.cache.Flush()
}

// Stats returns hit and miss counters.
func (s *LocationSearcher) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Items:  s.cache.ItemCount(),
	}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
