package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/parentcopilot/plugin/ai/advice"
	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
	"github.com/hrygo/parentcopilot/server/timezone"
	"github.com/hrygo/parentcopilot/store"
)

const dateLayout = "2006-01-02"

// DailyReportRequest describes a child's day. Date defaults to today.
type DailyReportRequest struct {
	ChildID         string                 `json:"childId"`
	Date            string                 `json:"date,omitempty"`
	QuickSelections advice.QuickSelections `json:"quickSelections"`
	FreeText        string                 `json:"freeText,omitempty"`
}

// DailyReportResponse is a generated report with the interactions it covered.
type DailyReportResponse struct {
	*advice.ReportResult
	Date         string                       `json:"date"`
	Interactions []store.CompletedInteraction `json:"interactions"`
}

// ListInteractions lists completed interactions, optionally for one day and child.
// GET /api/v1/interactions?date=YYYY-MM-DD&child_id=...
func (s *APIV1Service) ListInteractions(c echo.Context) error {
	find := store.FindInteraction{
		ChildID:  c.QueryParam("child_id"),
		Location: s.Interactions.Location(),
	}
	if raw := c.QueryParam("date"); raw != "" {
		day, err := s.parseDate(raw)
		if err != nil {
			return err
		}
		find.Day = day
	}

	list := s.Interactions.Find(find)
	if list == nil {
		list = []store.CompletedInteraction{}
	}
	return c.JSON(http.StatusOK, list)
}

// GenerateDailyReport summarizes a child's day from the parent's description
// and that day's interactions.
// POST /api/v1/daily-report
func (s *APIV1Service) GenerateDailyReport(c echo.Context) error {
	ctx := c.Request().Context()
	req := &DailyReportRequest{}
	if err := bind(c, req); err != nil {
		return err
	}

	kid, ok := s.Children.Get(ctx, req.ChildID)
	if !ok {
		return childNotFound(req.ChildID)
	}
	if err := req.QuickSelections.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidArgument, err.Error()).WithContext("field", "quickSelections")
	}

	day := timezone.StartOfDay(s.now(), s.Interactions.Location())
	if req.Date != "" {
		parsed, err := s.parseDate(req.Date)
		if err != nil {
			return err
		}
		day = parsed
	}

	lang := s.Settings.Language(ctx)
	description := advice.BuildDayDescription(lang, req.QuickSelections, strings.TrimSpace(req.FreeText))
	interactions := s.Interactions.QueryByDateAndChild(day, kid.ID)

	result, err := s.Generator.DailyReport(ctx, lang, kid, description, interactions)
	if err != nil {
		return err
	}
	if interactions == nil {
		interactions = []store.CompletedInteraction{}
	}
	return c.JSON(http.StatusOK, DailyReportResponse{
		ReportResult: result,
		Date:         day.Format(dateLayout),
		Interactions: interactions,
	})
}

func (s *APIV1Service) parseDate(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, raw, s.Interactions.Location())
	if err != nil {
		return time.Time{}, apperrors.InvalidField("date", "date must be formatted as YYYY-MM-DD")
	}
	return day, nil
}
