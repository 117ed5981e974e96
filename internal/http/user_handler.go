package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "github.com/bobimat/workshop-tasks/internal/data_models"
	middleware "github.com/bobimat/workshop-tasks/internal/http/middlewares"
	"github.com/bobimat/workshop-tasks/internal/services"
)

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return toHTTPError(err, "failed to list users")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(users),
		"users": users,
	})
}

func (h *Handler) AddUser(c echo.Context) error {
	var req dto.UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.AddUser(c.Request().Context(), middleware.Actor(c), userInput(req))
	if err != nil {
		return toHTTPError(err, "failed to create user")
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var req dto.UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), middleware.Actor(c), c.Param("id"), userInput(req))
	if err != nil {
		return toHTTPError(err, "failed to update user")
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser needs ?confirm=true.
func (h *Handler) DeleteUser(c echo.Context) error {
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	if err := h.userService.DeleteUser(c.Request().Context(), middleware.Actor(c), c.Param("id"), confirmed); err != nil {
		return toHTTPError(err, "failed to delete user")
	}

	return c.NoContent(http.StatusNoContent)
}

func userInput(req dto.UserRequest) services.UserInput {
	return services.UserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
}
