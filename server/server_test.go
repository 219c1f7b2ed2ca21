package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/parentcopilot/internal/profile"
	"github.com/hrygo/parentcopilot/plugin/ai"
	"github.com/hrygo/parentcopilot/store"
	"github.com/hrygo/parentcopilot/store/db/memory"
)

func newTestProfile() *profile.Profile {
	return &profile.Profile{
		Mode:                  "dev",
		Driver:                profile.DriverMemory,
		Language:              profile.LanguageEnglish,
		AIOpenAIAPIKey:        "your_openai_api_key_here",
		AIDisableOfflineDelay: true,
	}
}

func TestServerRoutes(t *testing.T) {
	prof := newTestProfile()
	s, err := NewServer(context.Background(), prof, store.New(memory.NewDB(), prof))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/wizard", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"step":"home"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestNewGeneratorSkipsPlaceholderKeys(t *testing.T) {
	cfg := ai.NewConfigFromProfile(newTestProfile())
	g := newGenerator(context.Background(), cfg, nil)
	assert.False(t, g.HasProvider())

	cfg.Primary.APIKey = "sk-test"
	g = newGenerator(context.Background(), cfg, nil)
	assert.True(t, g.HasProvider())
}

func TestStartAndShutdown(t *testing.T) {
	prof := newTestProfile()
	prof.Addr = "127.0.0.1"
	prof.Port = 0
	s, err := NewServer(context.Background(), prof, store.New(memory.NewDB(), prof))
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	s.Shutdown(context.Background())
}
