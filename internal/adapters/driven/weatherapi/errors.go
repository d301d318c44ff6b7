package weatherapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/skycast/internal/core/domain"
)

// WeatherAPI error codes returned in the error body.
const (
	CodeMissingKey      = 1002
	CodeMissingQuery    = 1003
	CodeNoMatch         = 1006
	CodeInvalidKey      = 2006
	CodeQuotaExceeded   = 2007
	CodeKeyDisabled     = 2008
	CodeAccessForbidden = 2009
)

// APIError represents a WeatherAPI error response.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("weatherapi: API error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("weatherapi: API error %d: %s", e.StatusCode, e.Message)
}

// errorBody is the JSON envelope WeatherAPI uses for errors.
type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// IsNoMatch checks if the error means the query matched no location.
func IsNoMatch(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeNoMatch
	}
	return false
}

// IsUnauthorized checks if the error indicates a missing or rejected API key.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case CodeMissingKey, CodeInvalidKey, CodeKeyDisabled, CodeAccessForbidden:
		return true
	}
	return apiErr.StatusCode == http.StatusUnauthorized
}

// IsQuotaExceeded checks if the error indicates the monthly quota is used up.
func IsQuotaExceeded(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeQuotaExceeded
	}
	return false
}

// classify maps an API error onto the domain sentinel it wraps.
// Errors without a specific meaning are network errors.
func classify(apiErr *APIError) error {
	switch {
	case IsUnauthorized(apiErr):
		return domain.ErrUnauthorized
	case IsQuotaExceeded(apiErr):
		return domain.ErrQuotaExceeded
	case IsNoMatch(apiErr):
		return domain.ErrNoMatch
	default:
		return domain.ErrNetwork
	}
}
