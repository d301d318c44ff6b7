// Package weatherapi provides location search and forecast adapters backed
// by the WeatherAPI.com REST API.
//
// Both adapters share a Client that carries the base URL, API key, request
// timeout and a token-bucket rate limiter. Rejected keys, an exhausted quota
// and unknown locations wrap domain.ErrUnauthorized, domain.ErrQuotaExceeded
// and domain.ErrNoMatch. Other transport failures and non-2xx responses wrap
// domain.ErrNetwork; undecodable or empty payloads wrap domain.ErrParse.
package weatherapi
