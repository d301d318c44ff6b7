package driven

// ConfigStore holds flat, dot-notation settings such as "forecast.days".
// Values set from the environment shadow stored ones but are never persisted.
type ConfigStore interface {
	// Get returns the raw value for key and whether it is present.
	Get(key string) (any, bool)

	// GetString, GetInt, GetFloat and GetBool convert the value for key,
	// returning the zero value when it is missing or of another type.
	// Numeric getters accept both integer and float encodings.
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set stores value for key and persists it.
	Set(key string, value any) error

	// Overridden reports whether key currently comes from the environment.
	Overridden(key string) bool

	// Save writes stored values, without overrides, to the backing file.
	Save() error

	// Load re-reads the backing file and the environment.
	Load() error

	// Path identifies where settings are kept.
	Path() string
}
