package ai

import (
	"strings"
	"time"

	"github.com/hrygo/parentcopilot/internal/profile"
	"github.com/hrygo/parentcopilot/plugin/ai/timeout"
)

// Placeholder credentials shipped in sample configuration files. A provider
// whose key equals one of these is treated as unconfigured.
var placeholderKeys = map[string]bool{
	"your_openai_api_key_here": true,
	"your_gemini_api_key_here": true,
	"dummy-key":                true,
}

// Config represents AI configuration.
type Config struct {
	Primary       LLMConfig // OpenAI
	Secondary     LLMConfig // Gemini
	Transcription TranscriptionConfig

	Timeout             time.Duration
	DisableOfflineDelay bool
}

// LLMConfig represents a single language model provider.
type LLMConfig struct {
	Provider    string // openai, gemini
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 1024
	Temperature float32 // default: 0.7
}

// TranscriptionConfig represents speech-to-text configuration.
type TranscriptionConfig struct {
	Model    string // whisper-1
	APIKey   string
	BaseURL  string
	Language string // he
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// IsConfigured reports whether the provider has a usable credential.
func (c LLMConfig) IsConfigured() bool {
	return IsUsableKey(c.APIKey)
}

// IsConfigured reports whether speech-to-text can be attempted.
func (c TranscriptionConfig) IsConfigured() bool {
	return IsUsableKey(c.APIKey)
}

// IsUsableKey reports whether key is non-empty and not a known placeholder.
func IsUsableKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !placeholderKeys[key]
}

// NewConfigFromProfile creates AI config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Primary: LLMConfig{
			Provider:    ProviderOpenAI,
			Model:       p.AIOpenAIModel,
			APIKey:      p.AIOpenAIAPIKey,
			BaseURL:     p.AIOpenAIBaseURL,
			MaxTokens:   timeout.MaxTokens,
			Temperature: 0.7,
		},
		Secondary: LLMConfig{
			Provider:    ProviderGemini,
			Model:       p.AIGeminiModel,
			APIKey:      p.AIGeminiAPIKey,
			MaxTokens:   timeout.MaxTokens,
			Temperature: 0.7,
		},
		Transcription: TranscriptionConfig{
			Model:    p.AITranscriptionModel,
			APIKey:   p.AIOpenAIAPIKey,
			BaseURL:  p.AIOpenAIBaseURL,
			Language: profile.LanguageHebrew,
		},
		Timeout:             p.AIProviderTimeout,
		DisableOfflineDelay: p.AIDisableOfflineDelay,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeout.ProviderTimeout
	}
	return cfg
}
