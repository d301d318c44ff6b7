// Package domain defines the weather and typeahead types shared by every
// layer of skycast:
//
//   - Candidate: a place returned by a partial-name search
//   - Selection: the place whose forecast is on screen, and where it came from
//   - ForecastBundle: current conditions plus the daily outlook
//   - ResolverSnapshot: what the typeahead resolver is doing right now
//   - AppSettings: API, search and forecast configuration
//
// Errors are sentinels classified into an ErrorKind for display.
//
// domain imports only the standard library. Nothing here performs I/O.
package domain
