package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	"github.com/bobimat/workshop-tasks/internal/services"
)

type Handler struct {
	authService  *services.AuthService
	taskService  *services.TaskService
	auditService *services.AuditService
	userService  *services.UserService
}

func NewHandler(
	authService *services.AuthService,
	taskService *services.TaskService,
	auditService *services.AuditService,
	userService *services.UserService,
) *Handler {
	return &Handler{
		authService:  authService,
		taskService:  taskService,
		auditService: auditService,
		userService:  userService,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// toHTTPError keeps client-facing messages for 4xx errors and hides the
// detail of everything else.
func toHTTPError(err error, fallback string) error {
	code := apperrors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		return echo.NewHTTPError(code, fallback).SetInternal(err)
	}
	return echo.NewHTTPError(code, err.Error())
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	return c.Validate(req)
}
