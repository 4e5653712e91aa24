package prefs

import "context"

// Store is a persistent key/value store for small text values.
// Get reports ok=false for a key that was never set or has been removed.
// Removing an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
