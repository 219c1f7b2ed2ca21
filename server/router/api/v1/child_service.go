package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
	"github.com/hrygo/parentcopilot/server/service/child"
	"github.com/hrygo/parentcopilot/store"
)

// ListChildren returns the saved children in insertion order.
// GET /api/v1/children
func (s *APIV1Service) ListChildren(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Children.List(c.Request().Context()))
}

// CreateChild saves a new child profile.
// POST /api/v1/children
func (s *APIV1Service) CreateChild(c echo.Context) error {
	create := &store.Child{}
	if err := bind(c, create); err != nil {
		return err
	}
	if err := child.Validate(create); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.Children.Add(c.Request().Context(), create))
}

// GetChild returns one child.
// GET /api/v1/children/:id
func (s *APIV1Service) GetChild(c echo.Context) error {
	kid, ok := s.Children.Get(c.Request().Context(), c.Param("id"))
	if !ok {
		return childNotFound(c.Param("id"))
	}
	return c.JSON(http.StatusOK, kid)
}

// UpdateChild merges the supplied fields into a child.
// PATCH /api/v1/children/:id
func (s *APIV1Service) UpdateChild(c echo.Context) error {
	update := &store.UpdateChild{}
	if err := bind(c, update); err != nil {
		return err
	}
	if err := child.ValidateUpdate(update); err != nil {
		return err
	}
	kid, ok := s.Children.Update(c.Request().Context(), c.Param("id"), update)
	if !ok {
		return childNotFound(c.Param("id"))
	}
	return c.JSON(http.StatusOK, kid)
}

// DeleteChild removes a child. Past interactions keep their child id.
// DELETE /api/v1/children/:id
func (s *APIV1Service) DeleteChild(c echo.Context) error {
	if !s.Children.Remove(c.Request().Context(), c.Param("id")) {
		return childNotFound(c.Param("id"))
	}
	return c.NoContent(http.StatusNoContent)
}

func childNotFound(id string) error {
	return apperrors.NotFound("child not found").WithContext("childId", id)
}
