package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/server/timezone"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where parentcopilot stores its own data
	DSN string
	// Driver is the storage driver (sqlite or memory)
	Driver string
	// Version is the current version of server
	Version string
	// Language is the default language for prompts and canned advice ("he" or "en")
	Language string
	// Timezone is the IANA zone that defines a calendar day for the log; empty means the host zone
	Timezone string

	// AI Configuration
	AIOpenAIAPIKey        string        // PARENTCOPILOT_OPENAI_API_KEY
	AIOpenAIBaseURL       string        // PARENTCOPILOT_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	AIOpenAIModel         string        // PARENTCOPILOT_OPENAI_MODEL (default: gpt-4o)
	AITranscriptionModel  string        // PARENTCOPILOT_TRANSCRIPTION_MODEL (default: whisper-1)
	AIGeminiAPIKey        string        // PARENTCOPILOT_GEMINI_API_KEY
	AIGeminiModel         string        // PARENTCOPILOT_GEMINI_MODEL (default: gemini-2.0-flash)
	AIProviderTimeout     time.Duration // PARENTCOPILOT_AI_TIMEOUT (default: 25s)
	AIDisableOfflineDelay bool          // PARENTCOPILOT_AI_DISABLE_OFFLINE_DELAY
}

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"

	LanguageHebrew  = "he"
	LanguageEnglish = "en"
)

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads the AI configuration from environment variables.
// Empty values are skipped so that defaults take effect.
func (p *Profile) FromEnv() {
	getDurationEnv := func(key string, defaultValue time.Duration) time.Duration {
		raw := os.Getenv(key)
		if raw == "" {
			return defaultValue
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			slog.Warn("invalid duration in environment, using default", "key", key, "value", raw)
			return defaultValue
		}
		return d
	}

	p.AIOpenAIAPIKey = os.Getenv("PARENTCOPILOT_OPENAI_API_KEY")
	p.AIOpenAIBaseURL = getEnvOrDefault("PARENTCOPILOT_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.AIOpenAIModel = getEnvOrDefault("PARENTCOPILOT_OPENAI_MODEL", "gpt-4o")
	p.AITranscriptionModel = getEnvOrDefault("PARENTCOPILOT_TRANSCRIPTION_MODEL", "whisper-1")
	p.AIGeminiAPIKey = os.Getenv("PARENTCOPILOT_GEMINI_API_KEY")
	p.AIGeminiModel = getEnvOrDefault("PARENTCOPILOT_GEMINI_MODEL", "gemini-2.0-flash")
	p.AIProviderTimeout = getDurationEnv("PARENTCOPILOT_AI_TIMEOUT", 25*time.Second)
	p.AIDisableOfflineDelay = os.Getenv("PARENTCOPILOT_AI_DISABLE_OFFLINE_DELAY") == "true"

	if p.Language == "" {
		p.Language = getEnvOrDefault("PARENTCOPILOT_LANGUAGE", LanguageHebrew)
	}
	if p.Timezone == "" {
		p.Timezone = os.Getenv("PARENTCOPILOT_TIMEZONE")
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = DriverSQLite
	}
	if p.Driver != DriverSQLite && p.Driver != DriverMemory {
		return errors.Errorf("unsupported driver %q: only 'sqlite' and 'memory' are supported", p.Driver)
	}

	if p.Language != LanguageHebrew && p.Language != LanguageEnglish {
		p.Language = LanguageHebrew
	}
	if !timezone.IsValidTimezone(p.Timezone) {
		return errors.Errorf("unknown timezone %q", p.Timezone)
	}

	if p.Driver == DriverMemory {
		return nil
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "parentcopilot")
		} else {
			p.Data = "/var/opt/parentcopilot"
		}
		if _, err := os.Stat(p.Data); os.IsNotExist(err) {
			if err := os.MkdirAll(p.Data, 0770); err != nil {
				slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
				return err
			}
		}
	}
	if p.Data == "" {
		p.Data = "."
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check dsn", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.DSN == "" {
		dbFile := fmt.Sprintf("parentcopilot_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
