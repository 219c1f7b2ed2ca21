// Package wizard sequences a consultation: choosing a child, describing the
// situation, answering clarifications and iterating on advice until the
// session is closed into the interaction log.
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/parentcopilot/plugin/ai/advice"
	"github.com/hrygo/parentcopilot/plugin/ai/clarify"
	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
	"github.com/hrygo/parentcopilot/server/service/child"
	"github.com/hrygo/parentcopilot/server/service/interaction"
	"github.com/hrygo/parentcopilot/server/service/session"
	"github.com/hrygo/parentcopilot/server/service/settings"
	"github.com/hrygo/parentcopilot/store"
)

// FeedbackState tracks the feedback dialog under the current advice.
type FeedbackState string

const (
	FeedbackNone            FeedbackState = ""
	FeedbackPending         FeedbackState = "pending"
	FeedbackAskingFollowUp  FeedbackState = "asking_followup"
	FeedbackLoadingFollowUp FeedbackState = "loading_followup"
	FeedbackHelped          FeedbackState = "helped"
)

// Snapshot is what the client renders for the current step.
type Snapshot struct {
	Step          Step                     `json:"step"`
	Session       *store.Session           `json:"session,omitempty"`
	Child         *store.Child             `json:"child,omitempty"`
	Questions     []clarify.Question       `json:"questions,omitempty"`
	QuestionIndex int                      `json:"questionIndex"`
	QuickAnswers  []string                 `json:"quickAnswers,omitempty"`
	Response      *advice.Result           `json:"response,omitempty"`
	History       []store.ConversationTurn `json:"history,omitempty"`
	Feedback      FeedbackState            `json:"feedback,omitempty"`
	Generating    bool                     `json:"generating"`
	Redirected    bool                     `json:"redirected,omitempty"`
}

// Controller drives the wizard for the single local user.
type Controller struct {
	children  child.Service
	sessions  *session.State
	log       *interaction.Log
	generator *advice.Generator
	settings  *settings.Service
	now       func() time.Time

	group singleflight.Group

	mu         sync.Mutex
	step       Step
	questions  []clarify.Question
	answers    []store.Clarification
	response   *advice.Result
	feedback   FeedbackState
	generating int
	// revision counts input changes that invalidate advice in flight.
	revision uint64
}

// NewController wires the wizard to its collaborators and resumes a session
// restored from the store at the step its content allows.
func NewController(children child.Service, sessions *session.State, log *interaction.Log, generator *advice.Generator, prefs *settings.Service) *Controller {
	return &Controller{
		children:  children,
		sessions:  sessions,
		log:       log,
		generator: generator,
		settings:  prefs,
		now:       time.Now,
		step:      resumeStep(sessions.Current()),
	}
}

// WithClock replaces the time source used for turn and interaction timestamps.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

func resumeStep(sess *store.Session) Step {
	switch {
	case sess == nil || sess.ChildID == "":
		return StepHome
	case sess.Context == nil || !sess.Context.IsComplete():
		return StepContext
	default:
		return StepDescribe
	}
}

// Snapshot returns the current wizard state.
func (c *Controller) Snapshot(ctx context.Context) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot(ctx)
}

// Start begins a new consultation from Home.
func (c *Controller) Start(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Next(c.step, EventStart, c.guards(ctx))
	if err != nil {
		return nil, err
	}
	c.sessions.Start(ctx)
	c.resetResponse()
	c.step = next
	return c.snapshot(ctx), nil
}

// NewChild opens the add-child form from the child picker.
func (c *Controller) NewChild(ctx context.Context) (*Snapshot, error) {
	return c.move(ctx, EventNewChild, nil)
}

// AddChild validates and saves a new child and selects it for the session.
func (c *Controller) AddChild(ctx context.Context, create *store.Child) (*Snapshot, error) {
	if err := child.Validate(create); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepNewChild {
		return nil, notAllowed(c.step, EventAddChild)
	}
	added := c.children.Add(ctx, create)
	return c.moveLocked(ctx, EventAddChild, func(s *store.Session) { s.ChildID = added.ID })
}

// SelectChild picks an existing child for the session.
func (c *Controller) SelectChild(ctx context.Context, childID string) (*Snapshot, error) {
	if _, ok := c.children.Get(ctx, childID); !ok {
		return nil, apperrors.NotFound("child not found").WithContext("childId", childID)
	}
	return c.move(ctx, EventSelectChild, func(s *store.Session) { s.ChildID = childID })
}

// SubmitContext stores the four situational selections.
func (c *Controller) SubmitContext(ctx context.Context, sc store.SessionContext) (*Snapshot, error) {
	if err := validateContext(sc); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	if sess := c.sessions.Current(); sess != nil && (sess.Context == nil || *sess.Context != sc) {
		changed = true
	}
	snap, err := c.moveLocked(ctx, EventSubmitContext, func(s *store.Session) { s.Context = &sc })
	if err == nil && changed {
		c.discardAdvice(ctx)
		snap = c.snapshot(ctx)
	}
	return snap, err
}

// SubmitDescription stores the free-text description and prepares the
// clarification questions. With no questions the wizard goes straight to
// the response step.
func (c *Controller) SubmitDescription(ctx context.Context, description string) (*Snapshot, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return nil, apperrors.InvalidField("description", "description must be at least 10 characters")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.sessions.Current()
	if sess == nil || sess.Context == nil {
		return nil, notAllowed(c.step, EventSubmitDescription)
	}
	if c.step != StepDescribe {
		return nil, notAllowed(c.step, EventSubmitDescription)
	}
	c.questions = clarify.Select(description, sess.Context.Location, sess.Context.Presence, c.settings.Language(ctx))
	c.answers = nil
	if sess.Description != description {
		c.discardAdvice(ctx)
	}

	return c.moveLocked(ctx, EventSubmitDescription, func(s *store.Session) { s.Description = description })
}

// AnswerClarification answers the current question. After the last answer
// the wizard moves to the response step.
func (c *Controller) AnswerClarification(ctx context.Context, answer string) (*Snapshot, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, apperrors.InvalidField("answer", "answer is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepClarification || len(c.answers) >= len(c.questions) {
		return nil, notAllowed(c.step, EventFinishClarification)
	}
	c.answers = append(c.answers, store.Clarification{
		Question: c.questions[len(c.answers)].Text,
		Answer:   answer,
	})
	if len(c.answers) < len(c.questions) {
		return c.snapshot(ctx), nil
	}
	return c.finishClarification(ctx)
}

// SkipClarifications keeps the answers given so far and moves on.
func (c *Controller) SkipClarifications(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepClarification {
		return nil, notAllowed(c.step, EventFinishClarification)
	}
	return c.finishClarification(ctx)
}

func (c *Controller) finishClarification(ctx context.Context) (*Snapshot, error) {
	answers := slices.Clone(c.answers)
	if sess := c.sessions.Current(); sess != nil && !slices.Equal(sess.Clarifications, answers) {
		c.discardAdvice(ctx)
	}
	return c.moveLocked(ctx, EventFinishClarification, func(s *store.Session) { s.Clarifications = answers })
}

// EnterResponse generates the first advice of the session. Calling it again
// returns the advice already generated. When the session lacks its child,
// context or description the wizard returns Home instead of failing.
func (c *Controller) EnterResponse(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	sess := c.sessions.Current()
	if !sess.IsReadyForResponse() {
		slog.InfoContext(ctx, "response step reached without a ready session, redirecting home", "step", c.step)
		c.sessions.Clear(ctx)
		c.resetClarifications()
		c.resetResponse()
		c.step = StepHome
		snap := c.snapshot(ctx)
		snap.Redirected = true
		c.mu.Unlock()
		return snap, nil
	}
	if c.step != StepResponse {
		step := c.step
		c.mu.Unlock()
		return nil, notAllowed(step, "enter_response")
	}
	if c.response != nil {
		snap := c.snapshot(ctx)
		c.mu.Unlock()
		return snap, nil
	}
	kid, ok := c.children.Get(ctx, sess.ChildID)
	if !ok {
		c.mu.Unlock()
		return nil, apperrors.NotFound("child not found").WithContext("childId", sess.ChildID)
	}
	lang := c.settings.Language(ctx)
	revision := c.revision
	c.generating++
	c.mu.Unlock()

	key := fmt.Sprintf("%s/generate/%d", sess.ID, revision)
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.generator.Generate(ctx, lang, kid, sess)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.generating--
	if !c.isCurrent(sess.ID) || c.step != StepResponse || c.revision != revision {
		slog.InfoContext(ctx, "discarding advice for a session that is no longer active", "session_id", sess.ID)
		return c.snapshot(ctx), nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to generate advice")
	}
	result := v.(*advice.Result)

	if c.response == nil {
		c.acceptTurn(ctx, sess.ID, result)
	}
	return c.snapshot(ctx), nil
}

// MarkHelped closes the session as resolved.
func (c *Controller) MarkHelped(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepResponse || c.feedback != FeedbackPending {
		return nil, apperrors.FailedPrecondition("there is no advice awaiting feedback")
	}
	sess, _ := c.sessions.Update(ctx, "", func(s *store.Session) {
		setLastFeedback(s, store.FeedbackHelped)
	})
	c.feedback = FeedbackHelped
	c.closeInteraction(ctx, sess)
	return c.snapshot(ctx), nil
}

// MarkNotHelped opens the follow-up dialog.
func (c *Controller) MarkNotHelped(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepResponse || c.feedback != FeedbackPending {
		return nil, apperrors.FailedPrecondition("there is no advice awaiting feedback")
	}
	c.sessions.Update(ctx, "", func(s *store.Session) {
		setLastFeedback(s, store.FeedbackNotHelped)
	})
	c.feedback = FeedbackAskingFollowUp
	return c.snapshot(ctx), nil
}

// CancelFollowUp closes the follow-up dialog without asking again.
func (c *Controller) CancelFollowUp(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.feedback != FeedbackAskingFollowUp {
		return nil, apperrors.FailedPrecondition("follow-up dialog is not open")
	}
	c.sessions.Update(ctx, "", func(s *store.Session) {
		setLastFeedback(s, "")
	})
	c.feedback = FeedbackPending
	return c.snapshot(ctx), nil
}

// SubmitFollowUp asks for different advice given what happened after the
// previous one.
func (c *Controller) SubmitFollowUp(ctx context.Context, text string) (*Snapshot, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.InvalidField("followUp", "follow-up text is required")
	}

	c.mu.Lock()
	if c.feedback == FeedbackLoadingFollowUp {
		c.mu.Unlock()
		return nil, apperrors.Busy("a follow-up is already being generated")
	}
	if c.step != StepResponse || c.feedback != FeedbackAskingFollowUp {
		c.mu.Unlock()
		return nil, apperrors.FailedPrecondition("follow-up dialog is not open")
	}
	sess := c.sessions.Current()
	kid, ok := c.children.Get(ctx, sess.ChildID)
	if !ok {
		c.mu.Unlock()
		return nil, apperrors.NotFound("child not found").WithContext("childId", sess.ChildID)
	}
	lang := c.settings.Language(ctx)
	turns := len(sess.ConversationHistory)
	c.feedback = FeedbackLoadingFollowUp
	c.generating++
	c.mu.Unlock()

	result, err := c.generator.FollowUp(ctx, lang, kid, sess, sess.ConversationHistory, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.generating--
	stale := !c.isCurrent(sess.ID) || c.step != StepResponse || c.feedback != FeedbackLoadingFollowUp ||
		len(c.sessions.Current().ConversationHistory) != turns
	if stale {
		slog.InfoContext(ctx, "discarding follow-up for a session that is no longer active", "session_id", sess.ID)
		return c.snapshot(ctx), nil
	}
	if err != nil {
		c.feedback = FeedbackAskingFollowUp
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to generate follow-up advice")
	}
	c.sessions.Update(ctx, sess.ID, func(s *store.Session) {
		if n := len(s.ConversationHistory); n > 0 {
			s.ConversationHistory[n-1].FollowUp = text
		}
	})
	c.acceptTurn(ctx, sess.ID, result)
	return c.snapshot(ctx), nil
}

// NewSituation closes the current consultation and starts another one.
func (c *Controller) NewSituation(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Next(c.step, EventNewSituation, c.guards(ctx))
	if err != nil {
		return nil, err
	}
	c.closeInteraction(ctx, c.sessions.Current())
	c.sessions.Start(ctx)
	c.resetClarifications()
	c.resetResponse()
	c.step = next
	return c.snapshot(ctx), nil
}

// GoHome closes the current consultation, if it produced advice, and
// discards the session.
func (c *Controller) GoHome(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeInteraction(ctx, c.sessions.Current())
	c.sessions.Clear(ctx)
	c.resetClarifications()
	c.resetResponse()
	c.step = StepHome
	return c.snapshot(ctx), nil
}

// Back returns to the previous step without repeating its side effects.
// Advice already generated is kept until the inputs it was built from change.
func (c *Controller) Back(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Next(c.step, EventBack, c.guards(ctx))
	if err != nil {
		return nil, err
	}
	if next == StepClarification || c.step == StepClarification {
		c.answers = nil
	}
	c.step = next
	return c.snapshot(ctx), nil
}

// move runs a transition guarded by Next and applies mutate to the session.
func (c *Controller) move(ctx context.Context, ev Event, mutate func(*store.Session)) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.moveLocked(ctx, ev, mutate)
}

// moveLocked must be called with mu held. mutate is applied before the
// guards are evaluated and rolled back by not persisting when the
// transition is refused.
func (c *Controller) moveLocked(ctx context.Context, ev Event, mutate func(*store.Session)) (*Snapshot, error) {
	guards := c.guards(ctx)
	if mutate != nil {
		preview := c.sessions.Current()
		if preview == nil {
			return nil, notAllowed(c.step, ev)
		}
		mutate(preview)
		guards = c.guardsFor(ctx, preview)
	}

	next, err := Next(c.step, ev, guards)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		c.sessions.Update(ctx, "", mutate)
	}
	c.step = next
	return c.snapshot(ctx), nil
}

func (c *Controller) guards(ctx context.Context) Guards {
	return c.guardsFor(ctx, c.sessions.Current())
}

func (c *Controller) guardsFor(ctx context.Context, sess *store.Session) Guards {
	g := Guards{
		HasChildren:      len(c.children.List(ctx)) > 0,
		HasQuestions:     len(c.questions) > 0,
		InFeedbackDialog: c.feedback == FeedbackAskingFollowUp || c.feedback == FeedbackLoadingFollowUp,
	}
	if sess != nil {
		g.ChildSelected = sess.ChildID != ""
		g.ContextComplete = sess.Context != nil && sess.Context.IsComplete()
		g.DescriptionValid = utf8.RuneCountInString(strings.TrimSpace(sess.Description)) >= MinDescriptionLength
	}
	return g
}

// acceptTurn must be called with mu held.
func (c *Controller) acceptTurn(ctx context.Context, sessionID string, result *advice.Result) {
	c.sessions.Update(ctx, sessionID, func(s *store.Session) {
		s.ConversationHistory = append(s.ConversationHistory, store.ConversationTurn{
			Response:  result.Response,
			Timestamp: c.now(),
		})
	})
	c.response = result
	c.feedback = FeedbackPending
}

// closeInteraction records the terminal state of sess. Sessions that never
// produced advice leave no record. Must be called with mu held.
func (c *Controller) closeInteraction(ctx context.Context, sess *store.Session) {
	if sess == nil || len(sess.ConversationHistory) == 0 || sess.Context == nil {
		return
	}

	resolved := false
	for _, turn := range sess.ConversationHistory {
		if turn.Feedback == store.FeedbackHelped {
			resolved = true
		}
	}
	c.log.Close(ctx, store.CompletedInteraction{
		SessionID:      sess.ID,
		Timestamp:      c.now(),
		ChildID:        sess.ChildID,
		Context:        *sess.Context,
		Description:    sess.Description,
		Clarifications: slices.Clone(sess.Clarifications),
		Responses:      slices.Clone(sess.ConversationHistory),
		Resolved:       resolved,
	})
}

// discardAdvice drops advice generated from inputs the user has since
// changed. Must be called with mu held.
func (c *Controller) discardAdvice(ctx context.Context) {
	c.revision++
	c.resetResponse()
	c.sessions.Update(ctx, "", func(s *store.Session) { s.ConversationHistory = nil })
}

func (c *Controller) isCurrent(sessionID string) bool {
	sess := c.sessions.Current()
	return sess != nil && sess.ID == sessionID
}

func (c *Controller) resetClarifications() {
	c.questions = nil
	c.answers = nil
}

func (c *Controller) resetResponse() {
	c.response = nil
	c.feedback = FeedbackNone
}

// snapshot must be called with mu held.
func (c *Controller) snapshot(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		Step:          c.step,
		Session:       c.sessions.Current(),
		Questions:     slices.Clone(c.questions),
		QuestionIndex: len(c.answers),
		Response:      c.response,
		Feedback:      c.feedback,
		Generating:    c.generating > 0,
	}
	if snap.Session != nil {
		snap.History = snap.Session.ConversationHistory
		if snap.Session.ChildID != "" {
			snap.Child, _ = c.children.Get(ctx, snap.Session.ChildID)
		}
	}
	if c.step == StepClarification {
		snap.QuickAnswers = clarify.QuickAnswers[c.settings.Language(ctx)]
	}
	return snap
}

func setLastFeedback(s *store.Session, feedback store.Feedback) {
	if n := len(s.ConversationHistory); n > 0 {
		s.ConversationHistory[n-1].Feedback = feedback
	}
}

func validateContext(sc store.SessionContext) error {
	switch {
	case !sc.Location.IsValid():
		return apperrors.InvalidField("location", "location is required")
	case !sc.Presence.IsValid():
		return apperrors.InvalidField("presence", "presence is required")
	case !sc.Physicality.IsValid():
		return apperrors.InvalidField("physicality", "physicality is required")
	case !sc.EmotionalState.IsValid():
		return apperrors.InvalidField("emotionalState", "emotional state is required")
	}
	return nil
}
