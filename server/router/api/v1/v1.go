package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/parentcopilot/internal/profile"
	"github.com/hrygo/parentcopilot/plugin/ai"
	"github.com/hrygo/parentcopilot/plugin/ai/advice"
	"github.com/hrygo/parentcopilot/server/internal/observability"
	ratelimit "github.com/hrygo/parentcopilot/server/middleware"
	"github.com/hrygo/parentcopilot/server/service/child"
	"github.com/hrygo/parentcopilot/server/service/interaction"
	"github.com/hrygo/parentcopilot/server/service/session"
	"github.com/hrygo/parentcopilot/server/service/settings"
	"github.com/hrygo/parentcopilot/server/service/wizard"
	"github.com/hrygo/parentcopilot/server/timezone"
	"github.com/hrygo/parentcopilot/store"
)

// APIV1Service serves the JSON API consumed by the web client.
type APIV1Service struct {
	Profile      *profile.Profile
	Store        *store.Store
	Children     child.Service
	Interactions *interaction.Log
	Settings     *settings.Service
	Wizard       *wizard.Controller
	Generator    *advice.Generator
	Transcriber  ai.Transcriber
	Metrics      *observability.Metrics
	RateLimiter  *ratelimit.RateLimiter

	now func() time.Time
}

// NewAPIV1Service loads the persisted state and wires the domain services.
func NewAPIV1Service(ctx context.Context, profile *profile.Profile, store *store.Store, generator *advice.Generator, transcriber ai.Transcriber, metrics *observability.Metrics) *APIV1Service {
	loc, err := timezone.ParseTimezone(profile.Timezone)
	if err != nil {
		slog.Warn("invalid timezone, using the host zone", "timezone", profile.Timezone, "error", err)
	}
	children := child.NewService(ctx, store)
	interactions := interaction.NewLog(ctx, store, loc)
	prefs := settings.NewService(store, profile.Language)
	if transcriber == nil {
		transcriber = ai.NewTranscriber(&ai.TranscriptionConfig{})
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}

	return &APIV1Service{
		Profile:      profile,
		Store:        store,
		Children:     children,
		Interactions: interactions,
		Settings:     prefs,
		Wizard:       wizard.NewController(children, session.NewState(ctx, store), interactions, generator, prefs),
		Generator:    generator,
		Transcriber:  transcriber,
		Metrics:      metrics,
		RateLimiter:  ratelimit.NewRateLimiter(ratelimit.DefaultRate, ratelimit.DefaultBurst),
		now:          func() time.Time { return timezone.NowInTimezone(loc) },
	}
}

// RegisterRoutes mounts the API under /api/v1 on echoServer and installs the
// error handler that renders AppError values.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	echoServer.HTTPErrorHandler = HTTPErrorHandler

	g := echoServer.Group("/api/v1")
	g.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(_ string) (bool, error) {
			return true, nil
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))
	g.Use(RequestLogging(s.Profile.IsDev()))

	limited := s.RateLimiter.Middleware()

	g.GET("/children", s.ListChildren)
	g.POST("/children", s.CreateChild)
	g.GET("/children/:id", s.GetChild)
	g.PATCH("/children/:id", s.UpdateChild)
	g.DELETE("/children/:id", s.DeleteChild)

	g.GET("/wizard", s.GetWizard)
	g.POST("/wizard/start", s.StartWizard)
	g.POST("/wizard/child", s.SelectChild)
	g.POST("/wizard/new-child", s.NewChild)
	g.POST("/wizard/add-child", s.AddChild)
	g.POST("/wizard/context", s.SubmitContext)
	g.POST("/wizard/description", s.SubmitDescription)
	g.POST("/wizard/clarifications/answer", s.AnswerClarification)
	g.POST("/wizard/clarifications/skip", s.SkipClarifications)
	g.POST("/wizard/response", s.EnterResponse, limited)
	g.POST("/wizard/feedback/helped", s.MarkHelped)
	g.POST("/wizard/feedback/not-helped", s.MarkNotHelped)
	g.POST("/wizard/feedback/cancel", s.CancelFollowUp)
	g.POST("/wizard/follow-up", s.SubmitFollowUp, limited)
	g.POST("/wizard/new-situation", s.NewSituation)
	g.POST("/wizard/home", s.GoHome)
	g.POST("/wizard/back", s.Back)

	g.GET("/interactions", s.ListInteractions)
	g.POST("/daily-report", s.GenerateDailyReport, limited)
	g.POST("/transcribe", s.Transcribe, limited)

	g.GET("/settings", s.GetSettings)
	g.PUT("/settings/language", s.SetLanguage)
	g.POST("/settings/visited", s.MarkVisited)

	g.GET("/metrics", s.GetMetrics)
}
