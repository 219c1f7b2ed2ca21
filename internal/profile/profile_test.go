package profile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aiEnvVars = []string{
	"PARENTCOPILOT_OPENAI_API_KEY",
	"PARENTCOPILOT_OPENAI_BASE_URL",
	"PARENTCOPILOT_OPENAI_MODEL",
	"PARENTCOPILOT_TRANSCRIPTION_MODEL",
	"PARENTCOPILOT_GEMINI_API_KEY",
	"PARENTCOPILOT_GEMINI_MODEL",
	"PARENTCOPILOT_AI_TIMEOUT",
	"PARENTCOPILOT_AI_DISABLE_OFFLINE_DELAY",
	"PARENTCOPILOT_LANGUAGE",
	"PARENTCOPILOT_TIMEZONE",
}

func clearAIEnvVars(t *testing.T) {
	for _, key := range aiEnvVars {
		t.Setenv(key, "")
	}
}

func TestAIProfileDefaults(t *testing.T) {
	clearAIEnvVars(t)

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"OpenAI key empty by default", "", profile.AIOpenAIAPIKey},
		{"OpenAI base URL default", "https://api.openai.com/v1", profile.AIOpenAIBaseURL},
		{"OpenAI model default", "gpt-4o", profile.AIOpenAIModel},
		{"Transcription model default", "whisper-1", profile.AITranscriptionModel},
		{"Gemini key empty by default", "", profile.AIGeminiAPIKey},
		{"Gemini model default", "gemini-2.0-flash", profile.AIGeminiModel},
		{"Language default", LanguageHebrew, profile.Language},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.actual)
		})
	}
	assert.Equal(t, 25*time.Second, profile.AIProviderTimeout)
	assert.False(t, profile.AIDisableOfflineDelay)
}

func TestAIProfileFromEnv(t *testing.T) {
	clearAIEnvVars(t)
	t.Setenv("PARENTCOPILOT_OPENAI_API_KEY", "sk-test")
	t.Setenv("PARENTCOPILOT_GEMINI_API_KEY", "gm-test")
	t.Setenv("PARENTCOPILOT_AI_TIMEOUT", "10s")
	t.Setenv("PARENTCOPILOT_AI_DISABLE_OFFLINE_DELAY", "true")
	t.Setenv("PARENTCOPILOT_LANGUAGE", "en")
	t.Setenv("PARENTCOPILOT_TIMEZONE", "Asia/Jerusalem")

	profile := &Profile{}
	profile.FromEnv()
	assert.Equal(t, "Asia/Jerusalem", profile.Timezone)

	assert.Equal(t, "sk-test", profile.AIOpenAIAPIKey)
	assert.Equal(t, "gm-test", profile.AIGeminiAPIKey)
	assert.Equal(t, 10*time.Second, profile.AIProviderTimeout)
	assert.True(t, profile.AIDisableOfflineDelay)
	assert.Equal(t, LanguageEnglish, profile.Language)
}

func TestAIProfileInvalidTimeoutFallsBack(t *testing.T) {
	clearAIEnvVars(t)
	t.Setenv("PARENTCOPILOT_AI_TIMEOUT", "soon")

	profile := &Profile{}
	profile.FromEnv()

	assert.Equal(t, 25*time.Second, profile.AIProviderTimeout)
}

func TestValidate(t *testing.T) {
	t.Run("memory driver needs no data dir", func(t *testing.T) {
		p := &Profile{Mode: "bogus", Driver: DriverMemory, Language: "fr"}
		require.NoError(t, p.Validate())
		assert.Equal(t, "demo", p.Mode)
		assert.Equal(t, LanguageHebrew, p.Language)
		assert.Empty(t, p.DSN)
	})

	t.Run("sqlite driver derives DSN", func(t *testing.T) {
		dir := t.TempDir()
		p := &Profile{Mode: "dev", Data: dir}
		require.NoError(t, p.Validate())
		assert.Equal(t, DriverSQLite, p.Driver)
		assert.Equal(t, filepath.Join(dir, "parentcopilot_dev.db"), p.DSN)
		assert.True(t, p.IsDev())
	})

	t.Run("missing data dir", func(t *testing.T) {
		p := &Profile{Mode: "dev", Data: filepath.Join(t.TempDir(), "missing")}
		assert.Error(t, p.Validate())
	})

	t.Run("unknown timezone", func(t *testing.T) {
		p := &Profile{Mode: "dev", Driver: DriverMemory, Timezone: "Mars/Olympus"}
		assert.Error(t, p.Validate())

		p = &Profile{Mode: "dev", Driver: DriverMemory, Timezone: "UTC"}
		assert.NoError(t, p.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		p := &Profile{Mode: "dev", Driver: "postgres"}
		assert.Error(t, p.Validate())
	})
}
