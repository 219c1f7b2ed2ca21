package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/internal/profile"
	"github.com/hrygo/parentcopilot/plugin/ai"
	"github.com/hrygo/parentcopilot/plugin/ai/advice"
	"github.com/hrygo/parentcopilot/server/internal/observability"
	apiv1 "github.com/hrygo/parentcopilot/server/router/api/v1"
	"github.com/hrygo/parentcopilot/store"
)

// Server owns the HTTP listener and the services behind it.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiV1      *apiv1.APIV1Service
}

// NewServer builds the provider chain from the profile and registers the API.
func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Store:   store,
		Profile: profile,
	}

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.BodyLimit("16M"))
	s.echoServer = echoServer

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	aiConfig := ai.NewConfigFromProfile(profile)
	metrics := observability.NewMetrics()
	generator := newGenerator(ctx, aiConfig, metrics)
	transcriber := ai.NewTranscriber(&aiConfig.Transcription)

	s.apiV1 = apiv1.NewAPIV1Service(ctx, profile, store, generator, transcriber, metrics)
	s.apiV1.RegisterRoutes(echoServer)

	slog.Info("advice providers initialized",
		"openai", aiConfig.Primary.IsConfigured(),
		"gemini", aiConfig.Secondary.IsConfigured(),
		"transcription", ai.IsTranscriptionAvailable(transcriber),
		"language", profile.Language)
	return s, nil
}

// newGenerator builds the primary and secondary providers that have usable
// credentials. Providers that fail to initialize are skipped.
func newGenerator(ctx context.Context, cfg *ai.Config, metrics advice.Recorder) *advice.Generator {
	var primary, secondary ai.LLMService
	if cfg.Primary.IsConfigured() {
		svc, err := ai.NewLLMService(ctx, &cfg.Primary)
		if err != nil {
			slog.Warn("failed to initialize primary AI provider", "provider", cfg.Primary.Provider, "error", err)
		} else {
			primary = svc
		}
	}
	if cfg.Secondary.IsConfigured() {
		svc, err := ai.NewLLMService(ctx, &cfg.Secondary)
		if err != nil {
			slog.Warn("failed to initialize secondary AI provider", "provider", cfg.Secondary.Provider, "error", err)
		} else {
			secondary = svc
		}
	}

	opts := []advice.Option{
		advice.WithTimeout(cfg.Timeout),
		advice.WithMetrics(metrics),
	}
	if cfg.DisableOfflineDelay {
		opts = append(opts, advice.WithoutOfflineDelay())
	}
	return advice.NewGenerator(primary, secondary, opts...)
}

// Start listens on the profile's address and serves in the background.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}

	go func() {
		if err := s.echoServer.Server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start echo server", "error", err)
		}
	}()
	return nil
}

// Shutdown stops accepting requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slog.Info("server shutting down")

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", slog.String("error", err.Error()))
	}

	slog.Info("parentcopilot stopped properly")
}
