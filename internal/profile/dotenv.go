package profile

import (
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// DefaultDotEnvFiles are tried in order; earlier files win because godotenv
// never overrides a variable that is already set.
var DefaultDotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads provider keys and other PARENTCOPILOT_* settings from
// dotenv files. Missing files are skipped. Setting PARENTCOPILOT_DOTENV to
// 0/false/off/no disables loading.
func LoadDotEnv(paths ...string) ([]string, error) {
	if isDotEnvDisabled() {
		return nil, nil
	}
	if len(paths) == 0 {
		paths = DefaultDotEnvFiles
	}

	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, errors.Wrapf(err, "failed to load %s", p)
		}
		slog.Debug("loaded environment file", "path", p)
		loaded = append(loaded, p)
	}
	return loaded, nil
}

func isDotEnvDisabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PARENTCOPILOT_DOTENV"))) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}
