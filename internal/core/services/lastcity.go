package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
	"github.com/custodia-labs/skycast/internal/logger"
)

// readLastCity returns the persisted city, retrying a failed read once.
// A store that still fails is logged and treated as holding no city, so
// callers fall back to the default city instead of failing.
func readLastCity(ctx context.Context, store driven.KeyValueStore) (string, bool) {
	if store == nil {
		return "", false
	}

	city, ok, err := store.Get(ctx, domain.PersistedCityKey)
	if err != nil {
		logger.Warn("reading last city failed, retrying: %v", err)
		city, ok, err = store.Get(ctx, domain.PersistedCityKey)
	}
	if err != nil {
		logger.Warn("reading last city failed, using the default city: %v", err)
		return "", false
	}

	city = strings.TrimSpace(city)
	return city, ok && city != ""
}
