package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/bobimat/workshop-tasks/internal/data_models"
	middleware "github.com/bobimat/workshop-tasks/internal/http/middlewares"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), middleware.Actor(c), req.Reference, req.Status)
	if err != nil {
		return toHTTPError(err, "failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err, "failed to load task")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return toHTTPError(err, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) TaskHistory(c echo.Context) error {
	entries, err := h.taskService.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err, "failed to load task history")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(entries),
		"entries": entries,
	})
}

func (h *Handler) UpdateTaskStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.TransitionStatus(c.Request().Context(), middleware.Actor(c), c.Param("id"), req.Status)
	if err != nil {
		return toHTTPError(err, "failed to update status")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) RenameTaskReference(c echo.Context) error {
	var req dto.RenameReferenceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.RenameReference(c.Request().Context(), middleware.Actor(c), c.Param("id"), req.Reference)
	if err != nil {
		return toHTTPError(err, "failed to update reference")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), middleware.Actor(c), c.Param("id")); err != nil {
		return toHTTPError(err, "failed to delete task")
	}

	return c.NoContent(http.StatusNoContent)
}
