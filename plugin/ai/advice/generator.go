// Package advice turns a consultation into three-part advice, trying the
// primary provider, then the secondary provider, then the offline table.
package advice

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/plugin/ai"
	"github.com/hrygo/parentcopilot/plugin/ai/timeout"
	"github.com/hrygo/parentcopilot/store"
)

// Tier is the generation strategy that produced a result.
type Tier string

const (
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
	TierOffline   Tier = "offline"
)

// Result is one generated piece of advice.
type Result struct {
	Response store.AIResponse `json:"response"`
	Tier     Tier             `json:"tier"`
	Provider string           `json:"provider,omitempty"`
	Category Category         `json:"category,omitempty"`
}

// Recorder receives per-tier generation counters.
type Recorder interface {
	RecordAttempt(tier string)
	RecordSuccess(tier string, duration time.Duration)
	RecordFailure(tier string, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordAttempt(string)                {}
func (nopRecorder) RecordSuccess(string, time.Duration) {}
func (nopRecorder) RecordFailure(string, time.Duration) {}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Generator runs the provider fallback chain.
type Generator struct {
	primary   ai.LLMService
	secondary ai.LLMService
	offline   *Offline
	metrics   Recorder

	timeout      time.Duration
	sleep        Sleeper
	jitter       func() float64
	disableDelay bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithOffline replaces the offline responder.
func WithOffline(o *Offline) Option { return func(g *Generator) { g.offline = o } }

// WithMetrics records per-tier counters into r. A nil r disables recording.
func WithMetrics(r Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.metrics = r
		}
	}
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithSleeper replaces the wait used for artificial delays.
func WithSleeper(s Sleeper) Option { return func(g *Generator) { g.sleep = s } }

// WithJitter replaces the source of the random part of the offline delay.
// fn must return a value in [0, 1).
func WithJitter(fn func() float64) Option { return func(g *Generator) { g.jitter = fn } }

// WithoutOfflineDelay skips the artificial delays before offline advice.
func WithoutOfflineDelay() Option { return func(g *Generator) { g.disableDelay = true } }

// NewGenerator creates a Generator. Either provider may be nil when its
// credential is not configured.
func NewGenerator(primary, secondary ai.LLMService, opts ...Option) *Generator {
	g := &Generator{
		primary:   primary,
		secondary: secondary,
		offline:   NewOffline(),
		metrics:   nopRecorder{},
		timeout:   timeout.ProviderTimeout,
		sleep:     sleepContext,
		jitter:    rand.Float64,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasProvider reports whether any remote provider is configured.
func (g *Generator) HasProvider() bool {
	return g.primary != nil || g.secondary != nil
}

// Generate produces advice for a session that is ready for a response.
func (g *Generator) Generate(ctx context.Context, lang string, child *store.Child, session *store.Session) (*Result, error) {
	if child == nil || session == nil {
		return nil, errors.New("child and session are required")
	}

	prompt := BuildPrompt(lang, child, session)
	return g.advise(ctx, "generate", lang, session.Description, prompt)
}

// FollowUp produces a different piece of advice after the parent reported
// that the previous turns did not help.
func (g *Generator) FollowUp(ctx context.Context, lang string, child *store.Child, session *store.Session, history []store.ConversationTurn, feedback string) (*Result, error) {
	if child == nil || session == nil {
		return nil, errors.New("child and session are required")
	}

	prompt := BuildFollowUpPrompt(lang, child, session, history, feedback)
	return g.advise(ctx, "follow_up", lang, session.Description+" "+feedback, prompt)
}

func (g *Generator) advise(ctx context.Context, op, lang, description, prompt string) (*Result, error) {
	var parsed *store.AIResponse
	tier, provider := g.run(ctx, op, prompt, func(raw string) error {
		resp, err := ParseResponse(raw)
		if err != nil {
			return err
		}
		parsed = resp
		return nil
	})
	if tier != TierOffline {
		return &Result{Response: *parsed, Tier: tier, Provider: provider}, nil
	}

	start := time.Now()
	g.metrics.RecordAttempt(string(TierOffline))
	resp, category := g.offline.Respond(lang, description)
	g.metrics.RecordSuccess(string(TierOffline), time.Since(start))
	return &Result{Response: resp, Tier: TierOffline, Category: category}, nil
}

// run tries the configured providers in order and returns the tier that
// produced an accepted reply. TierOffline means the caller must build the
// offline result; the matching delay has already been applied.
func (g *Generator) run(ctx context.Context, op, prompt string, accept func(raw string) error) (Tier, string) {
	if !g.HasProvider() {
		slog.DebugContext(ctx, "no AI provider configured, using offline advice", "operation", op)
		g.wait(ctx, timeout.OfflineDelayMin+time.Duration(g.jitter()*float64(timeout.OfflineDelayJitter)))
		return TierOffline, ""
	}

	tiers := []struct {
		tier Tier
		svc  ai.LLMService
	}{
		{TierPrimary, g.primary},
		{TierSecondary, g.secondary},
	}
	for _, t := range tiers {
		if t.svc == nil {
			continue
		}

		start := time.Now()
		g.metrics.RecordAttempt(string(t.tier))
		err := g.call(ctx, t.svc, prompt, accept)
		if err == nil {
			g.metrics.RecordSuccess(string(t.tier), time.Since(start))
			slog.InfoContext(ctx, "AI provider succeeded",
				"operation", op,
				"tier", t.tier,
				"provider", t.svc.Name(),
				"duration_ms", time.Since(start).Milliseconds())
			return t.tier, t.svc.Name()
		}
		g.metrics.RecordFailure(string(t.tier), time.Since(start))
		slog.WarnContext(ctx, "AI provider failed, falling back",
			"operation", op,
			"tier", t.tier,
			"provider", t.svc.Name(),
			"error", err)
	}

	g.wait(ctx, timeout.FallbackDelay)
	return TierOffline, ""
}

func (g *Generator) call(ctx context.Context, svc ai.LLMService, prompt string, accept func(raw string) error) error {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := svc.Complete(callCtx, prompt)
	if err != nil {
		return err
	}
	return accept(raw)
}

func (g *Generator) wait(ctx context.Context, d time.Duration) {
	if g.disableDelay {
		return
	}
	// A cancelled wait still yields offline advice.
	_ = g.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
