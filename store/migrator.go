package store

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/internal/version"
)

// KeyDataVersion records the release that last wrote the store.
const KeyDataVersion = "parenting-copilot-data-version"

// CheckDataVersion refuses to open data written by a newer release and
// stamps the store with the running version otherwise.
func (s *Store) CheckDataVersion(ctx context.Context) error {
	mode := ""
	if s.profile != nil {
		mode = s.profile.Mode
	}
	current := version.GetCurrentVersion(mode)

	stored := Load(ctx, s, KeyDataVersion, "")
	if version.IsValid(stored) {
		if version.IsVersionGreaterThan(stored, current) {
			return errors.Errorf("data was written by version %s, which is newer than the running version %s", stored, current)
		}
		if version.IsVersionGreaterOrEqualThan(stored, current) {
			return nil
		}
	}

	if err := Save(ctx, s, KeyDataVersion, current); err != nil {
		return errors.Wrap(err, "failed to record data version")
	}
	slog.Info("data version updated", "from", stored, "to", current, "schema", version.GetMinorVersion(current))
	return nil
}
