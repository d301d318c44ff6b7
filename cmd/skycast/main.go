// Command skycast is a terminal weather client with a debounced city typeahead.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/skycast/internal/adapters/driven/cache"
	"github.com/custodia-labs/skycast/internal/adapters/driven/config/file"
	"github.com/custodia-labs/skycast/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/skycast/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/skycast/internal/adapters/driven/weatherapi"
	"github.com/custodia-labs/skycast/internal/adapters/driving/cli"
	"github.com/custodia-labs/skycast/internal/core/ports/driven"
	"github.com/custodia-labs/skycast/internal/core/ports/driving"
	"github.com/custodia-labs/skycast/internal/core/services"
	"github.com/custodia-labs/skycast/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return err
	}

	client := weatherapi.NewClient(weatherapi.ConfigFromSettings(settings.API))
	searcher := cache.NewLocationSearcher(
		weatherapi.NewSearchClient(client, settings.Search.Language, settings.Search.MaxCandidates),
		settings.Search.CacheTTL,
	)
	forecasts := weatherapi.NewForecastClient(client)

	kv, closeStore := openKVStore()
	defer closeStore()

	resolver := services.NewResolver(searcher, forecasts, kv, services.ResolverConfig{
		Search:   settings.Search,
		Forecast: settings.Forecast,
		Clock:    services.SystemClock(),
	}).WithContext(ctx)

	cli.SetVersion(version)
	cli.SetServices(
		services.NewWeatherService(searcher, forecasts, kv, settings.Forecast),
		settingsService,
	)
	cli.SetTUIConfig(&cli.TUIConfig{
		Resolver:        resolver,
		SettingsService: settingsService,
		Watch: func(ctx context.Context, onChange func()) error {
			return configStore.Watch(ctx, func() {
				applyReload(settingsService, client, searcher)
				onChange()
			})
		},
		LogPath: filepath.Join(filepath.Dir(configStore.Path()), "skycast.log"),
	})

	return cli.Execute(ctx)
}

// openKVStore opens the SQLite state store. When it cannot be opened the
// last city is kept in memory for this run only.
func openKVStore() (driven.KeyValueStore, func()) {
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("last city will not be remembered: %v", err)
		return memory.NewKVStore(), func() {}
	}
	logger.Debug("state store at %s", store.Path())

	return store.KVStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing state store: %v", err)
		}
	}
}

// applyReload pushes reloaded settings into the live API client and drops
// cached candidates that may have been fetched with old settings.
func applyReload(settings driving.SettingsService, client *weatherapi.Client, searcher *cache.LocationSearcher) {
	s, err := settings.Get()
	if err != nil {
		logger.Warn("reading reloaded settings: %v", err)
		return
	}
	client.SetAPIKey(s.API.APIKey)
	searcher.Flush()
}
