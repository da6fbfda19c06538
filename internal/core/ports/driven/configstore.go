package driven

// ConfigStore holds flat, dot-addressed settings such as "store.max_items".
//
// Typed getters convert what the backing format produced and return the
// zero value when the key is missing or cannot be converted. Callers that
// need to tell the two apart use Get.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path locates the backing file, or names the store when there is none.
	Path() string
}
