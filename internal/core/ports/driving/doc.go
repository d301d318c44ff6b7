// Package driving defines the interfaces that external actors use to drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The TUI and CLI adapters depend on these interfaces; core services
// implement them.
//
// # Interfaces
//
//   - TypeaheadResolver: Debounced search-to-select flow behind the TUI
//   - WeatherService: One-shot search and forecast operations for the CLI
//   - SettingsService: Application settings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
