package domain

import "strings"

// Candidate is an unresolved location returned by a location search,
// pending user confirmation.
type Candidate struct {
	// ID is the provider's identifier, zero when unknown.
	ID int64 `json:"id,omitempty"`

	// Name is the city name, used as the forecast query.
	Name string `json:"name"`

	// Region is the state, province or county.
	Region string `json:"region,omitempty"`

	// Country is the country name.
	Country string `json:"country"`

	// Latitude in decimal degrees.
	Latitude float64 `json:"lat"`

	// Longitude in decimal degrees.
	Longitude float64 `json:"lon"`

	// URL is the provider's slug for the location.
	URL string `json:"url,omitempty"`
}

// Label renders the candidate for display as "Name, Country".
func (c Candidate) Label() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + ", " + c.Country
}

// Key identifies the candidate for display disambiguation.
func (c Candidate) Key() string {
	return strings.ToLower(c.Name) + "|" + strings.ToLower(c.Country)
}

// SelectionSource records where the active selection came from.
type SelectionSource string

// Selection sources.
const (
	// SelectionExplicit is a candidate the user picked.
	SelectionExplicit SelectionSource = "explicit"

	// SelectionPersisted is the city recovered from the key-value store.
	SelectionPersisted SelectionSource = "persisted"

	// SelectionDefault is the built-in fallback city.
	SelectionDefault SelectionSource = "default"
)

// String returns the string representation.
func (s SelectionSource) String() string {
	return string(s)
}

// Selection is the confirmed, active location driving the displayed forecast.
type Selection struct {
	// Name is the city name sent to the forecast source.
	Name string

	// Candidate is set for explicit selections only.
	Candidate *Candidate

	// Source records how the selection was made.
	Source SelectionSource
}

// NewSelection creates an explicit selection from a candidate.
func NewSelection(c Candidate) Selection {
	cand := c
	return Selection{
		Name:      c.Name,
		Candidate: &cand,
		Source:    SelectionExplicit,
	}
}
