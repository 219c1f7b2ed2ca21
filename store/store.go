package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/internal/profile"
)

// Keys under which the application persists its state.
const (
	KeyChildren     = "parenting-copilot-children"
	KeySession      = "parenting-copilot-session"
	KeyInteractions = "parenting-copilot-interactions"
	KeyLanguage     = "parenting-copilot-language"
	KeyVisited      = "parenting-copilot-visited"
)

// Store provides typed access to the persisted key/value documents.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Load reads the document stored under key into a value of type T.
// Reads before any write, and reads that fail, return def. Failures are logged.
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, ok, err := s.driver.GetValue(ctx, key)
	if err != nil {
		slog.Warn("failed to read persisted value", "key", key, "error", err)
		return def
	}
	if !ok {
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		slog.Warn("failed to decode persisted value", "key", key, "error", err)
		return def
	}
	return value
}

// Save serializes value and writes it under key synchronously.
// Callers treat a returned error as non-fatal and keep their in-memory copy.
func Save[T any](ctx context.Context, s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode value for key %s", key)
	}
	if err := s.driver.SetValue(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}
	return nil
}

// Delete removes the document stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.driver.DeleteValue(ctx, key); err != nil {
		return errors.Wrapf(err, "failed to delete key %s", key)
	}
	return nil
}
