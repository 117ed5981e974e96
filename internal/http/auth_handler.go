package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/bobimat/workshop-tasks/internal/data_models"
	middleware "github.com/bobimat/workshop-tasks/internal/http/middlewares"
)

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err, "failed to sign in")
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: sess.Token, User: sess.User})
}

func (h *Handler) Logout(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if err := h.authService.Logout(c.Request().Context(), sess.Token); err != nil {
		return toHTTPError(err, "failed to sign out")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.Actor(c))
}
