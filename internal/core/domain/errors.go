package domain

import (
	"context"
	"errors"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSuperseded indicates a result was discarded because a newer
	// request of the same kind was issued before it arrived.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrMissingAPIKey indicates the weather API key is not configured.
	ErrMissingAPIKey = errors.New("weather API key not configured")

	// Weather API Errors.

	// ErrNetwork indicates a transport failure, timeout or non-success status.
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized indicates the weather API rejected the configured key.
	ErrUnauthorized = errors.New("weather API key rejected")

	// ErrQuotaExceeded indicates the weather API call quota is used up.
	ErrQuotaExceeded = errors.New("weather API quota exceeded")

	// ErrNoMatch indicates the weather API knows no location for the query.
	ErrNoMatch = errors.New("no matching location")

	// ErrParse indicates a malformed or empty API response.
	ErrParse = errors.New("malformed response")

	// Storage Errors.

	// ErrPersistence indicates the key-value store could not be read or written.
	// It is never fatal for forecast display.
	ErrPersistence = errors.New("persistence error")
)

// ErrorKind classifies an error for presentation without exposing
// raw transport errors.
type ErrorKind string

// Error kinds surfaced by the resolver.
const (
	ErrorKindNone        ErrorKind = "none"
	ErrorKindNetwork     ErrorKind = "network"
	ErrorKindParse       ErrorKind = "parse"
	ErrorKindEmptyResult ErrorKind = "empty_result"
	ErrorKindPersistence ErrorKind = "persistence"
	ErrorKindAuth        ErrorKind = "auth"
	ErrorKindQuota       ErrorKind = "quota"
	ErrorKindUnknown     ErrorKind = "unknown"
)

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

// Description returns a short human-readable description of the kind.
func (k ErrorKind) Description() string {
	switch k {
	case ErrorKindNone:
		return ""
	case ErrorKindNetwork:
		return "Network unavailable"
	case ErrorKindParse:
		return "Unexpected response from weather service"
	case ErrorKindEmptyResult:
		return "No matches"
	case ErrorKindPersistence:
		return "Could not save last city"
	case ErrorKindAuth:
		return "Weather API key missing or rejected"
	case ErrorKindQuota:
		return "Weather API quota exceeded"
	default:
		return "Something went wrong"
	}
}

// KindOf classifies err. A nil error is ErrorKindNone.
// Context deadlines count as network failures.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrMissingAPIKey),
		errors.Is(err, ErrUnauthorized):
		return ErrorKindAuth
	case errors.Is(err, ErrQuotaExceeded):
		return ErrorKindQuota
	case errors.Is(err, ErrNoMatch):
		return ErrorKindEmptyResult
	case errors.Is(err, ErrNetwork),
		errors.Is(err, context.DeadlineExceeded):
		return ErrorKindNetwork
	case errors.Is(err, ErrParse):
		return ErrorKindParse
	case errors.Is(err, ErrPersistence):
		return ErrorKindPersistence
	default:
		return ErrorKindUnknown
	}
}
