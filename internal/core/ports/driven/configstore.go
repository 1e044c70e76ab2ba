package driven

// ConfigStore provides access to persisted configuration. Keys are
// dotted paths ("threshold", "scorer.url", "metrics.rouge");
// implementations handle storage format and type conversion.
type ConfigStore interface {
	// Get retrieves a raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, "" when absent or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 when absent or mistyped.
	GetInt(key string) int

	// GetBool retrieves a boolean value, false when absent or
	// mistyped. Callers that need a true default must use Get and
	// check presence themselves.
	GetBool(key string) bool

	// Set stores a value under a dotted key and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage, replacing current values.
	Load() error

	// Path returns the backing file path, for display.
	Path() string
}
