package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LanguageRequest switches the prompt and advice language.
type LanguageRequest struct {
	Language string `json:"language"`
}

// GetSettings returns the language preference and visited flag.
// GET /api/v1/settings
func (s *APIV1Service) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Settings.Get(c.Request().Context()))
}

// SetLanguage saves the language preference.
// PUT /api/v1/settings/language
func (s *APIV1Service) SetLanguage(c echo.Context) error {
	ctx := c.Request().Context()
	req := &LanguageRequest{}
	if err := bind(c, req); err != nil {
		return err
	}
	if err := s.Settings.SetLanguage(ctx, req.Language); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Settings.Get(ctx))
}

// MarkVisited records that the landing page has been seen.
// POST /api/v1/settings/visited
func (s *APIV1Service) MarkVisited(c echo.Context) error {
	ctx := c.Request().Context()
	s.Settings.MarkVisited(ctx)
	return c.JSON(http.StatusOK, s.Settings.Get(ctx))
}
