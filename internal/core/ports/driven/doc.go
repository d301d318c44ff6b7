// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - LocationSearcher: Resolves partial city names into candidates
//   - ForecastSource: Fetches current conditions and a daily forecast
//   - KeyValueStore: Persists the last selected city across restarts
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - Clock: Timer source for debouncing. Defaults to the wall clock.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
