package store

import (
	"context"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
// Values are opaque JSON documents addressed by a namespaced key.
type Driver interface {
	// GetValue returns the raw value stored under key and whether it exists.
	GetValue(ctx context.Context, key string) ([]byte, bool, error)
	// SetValue writes value under key, replacing any previous value.
	SetValue(ctx context.Context, key string, value []byte) error
	// DeleteValue removes key. Deleting a missing key is not an error.
	DeleteValue(ctx context.Context, key string) error

	Close() error
}
