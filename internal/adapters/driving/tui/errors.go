package tui

import "errors"

// ErrMissingResolver is returned when the typeahead resolver is not provided.
var ErrMissingResolver = errors.New("tui: typeahead resolver is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
