package v1

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/parentcopilot/server/service/wizard"
	"github.com/hrygo/parentcopilot/store"
)

// SelectChildRequest picks an existing child for the session.
type SelectChildRequest struct {
	ChildID string `json:"childId"`
}

// DescriptionRequest carries the free-text description of the situation.
type DescriptionRequest struct {
	Description string `json:"description"`
}

// AnswerRequest answers the current clarification question.
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// FollowUpRequest tells what happened after advice that did not help.
type FollowUpRequest struct {
	Text string `json:"text"`
}

// GetWizard returns the current wizard snapshot.
// GET /api/v1/wizard
func (s *APIV1Service) GetWizard(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Wizard.Snapshot(c.Request().Context()))
}

// StartWizard begins a consultation.
// POST /api/v1/wizard/start
func (s *APIV1Service) StartWizard(c echo.Context) error {
	return s.step(c, s.Wizard.Start)
}

// SelectChild selects an existing child.
// POST /api/v1/wizard/child
func (s *APIV1Service) SelectChild(c echo.Context) error {
	req := &SelectChildRequest{}
	if err := bind(c, req); err != nil {
		return err
	}
	return s.step(c, func(ctx context.Context) (*wizard.Snapshot, error) {
		return s.Wizard.SelectChild(ctx, req.ChildID)
	})
}

// NewChild opens the add-child form.
// POST /api/v1/wizard/new-child
func (s *APIV1Service) NewChild(c echo.Context) error {
	return s.step(c, s.Wizard.NewChild)
}

// AddChild saves a child from the wizard form and selects it.
// POST /api/v1/wizard/add-child
func (s *APIV1Service) AddChild(c echo.Context) error {
	create := &store.Child{}
	if err := bind(c, create); err != nil {
		return err
	}
	return s.step(c, func(ctx context.Context) (*wizard.Snapshot, error) {
		return s.Wizard.AddChild(ctx, create)
	})
}

// SubmitContext stores the four situational selections.
// POST /api/v1/wizard/context
func (s *APIV1Service) SubmitContext(c echo.Context) error {
	sc := store.SessionContext{}
	if err := bind(c, &sc); err != nil {
		return err
	}
	return s.step(c, func(ctx context.Context) (*wizard.Snapshot, error) {
		return s.Wizard.SubmitContext(ctx, sc)
	})
}

// SubmitDescription stores the description and prepares clarifications.
// POST /api/v1/wizard/description
func (s *APIV1Service) SubmitDescription(c echo.Context) error {
	req := &DescriptionRequest{}
	if err := bind(c, req); err != nil {
		return err
	}
	return s.step(c, func(ctx context.Context) (*wizard.Snapshot, error) {
		return s.Wizard.SubmitDescription(ctx, req.Description)
	})
}

// AnswerClarification answers the current question.
// POST /api/v1/wizard/clarifications/answer
func (s *APIV1Service) AnswerClarification(c echo.Context) error {
	req := &AnswerRequest{}
	if err := bind(c, req); err != nil {
		return err
	}
	return s.step(c, func(ctx context.Context) (*wizard.Snapshot, error) {
		return s.Wizard.AnswerClarification(ctx, req.Answer)
	})
}

// SkipClarifications moves on with the answers given so far.
// POST /api/v1/wizard/clarifications/skip
func (s *APIV1Service) SkipClarifications(c echo.Context) error {
	return s.step(c, s.Wizard.SkipClarifications)
}

// EnterResponse generates the advice for the session.
// POST /api/v1/wizard/response
func (s *APIV1Service) EnterResponse(c echo.Context) error {
	return s.step(c, s.Wizard.EnterResponse)
}

// MarkHelped closes the session as resolved.
// POST /api/v1/wizard/feedback/helped
func (s *APIV1Service) MarkHelped(c echo.Context) error {
	return s.step(c, s.Wizard.MarkHelped)
}

// MarkNotHelped opens the follow-up dialog.
// POST /api/v1/wizard/feedback/not-helped
func (s *APIV1Service) MarkNotHelped(c echo.Context) error {
	return s.step(c, s.Wizard.MarkNotHelped)
}

// CancelFollowUp closes the follow-up dialog.
// POST /api/v1/wizard/feedback/cancel
func (s *APIV1Service) CancelFollowUp(c echo.Context) error {
	return s.step(c, s.Wizard.CancelFollowUp)
}

// SubmitFollowUp asks for different advice.
// POST /api/v1/wizard/follow-up
func (s *APIV1Service) SubmitFollowUp(c echo.Context) error {
	req := &FollowUpRequest{}
	if err := bind(c, req); err != nil {
		return err
	}
	return s.step(c, func(ctx context.Context) (*wizard.Snapshot, error) {
		return s.Wizard.SubmitFollowUp(ctx, req.Text)
	})
}

// NewSituation closes the session and starts another.
// POST /api/v1/wizard/new-situation
func (s *APIV1Service) NewSituation(c echo.Context) error {
	return s.step(c, s.Wizard.NewSituation)
}

// GoHome closes the session and returns to the landing page.
// POST /api/v1/wizard/home
func (s *APIV1Service) GoHome(c echo.Context) error {
	return s.step(c, s.Wizard.GoHome)
}

// Back returns to the previous step.
// POST /api/v1/wizard/back
func (s *APIV1Service) Back(c echo.Context) error {
	return s.step(c, s.Wizard.Back)
}

func (s *APIV1Service) step(c echo.Context, fn func(context.Context) (*wizard.Snapshot, error)) error {
	snap, err := fn(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
