package driven

import "context"

// KeyValueStore is a flat string-keyed persistence API.
//
// The graph store keeps its whole collection under a single key, so an
// implementation only needs to round-trip opaque values. Implementations
// that enforce a size limit return an error wrapping domain.ErrStorageQuota
// from Set when a value exceeds it.
type KeyValueStore interface {
	// Get returns the value for key. The boolean is false if the key is unset.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
