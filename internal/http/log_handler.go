package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/bobimat/workshop-tasks/internal/data_models"
	"github.com/bobimat/workshop-tasks/internal/export"
	"github.com/bobimat/workshop-tasks/internal/services"
)

func (h *Handler) ListLogs(c echo.Context) error {
	dateRange, err := services.ParseDateRange(c.QueryParam("range"))
	if err != nil {
		return toHTTPError(err, "")
	}

	entries, err := h.auditService.ListEntries(c.Request().Context(), dateRange)
	if err != nil {
		return toHTTPError(err, "failed to list logs")
	}

	return c.JSON(http.StatusOK, dto.LogListResponse{
		Range:   dateRange,
		Count:   len(entries),
		Entries: entries,
	})
}

func (h *Handler) ExportLogs(c echo.Context) error {
	dateRange, err := services.ParseDateRange(c.QueryParam("range"))
	if err != nil {
		return toHTTPError(err, "")
	}

	format, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return toHTTPError(err, "")
	}

	artifact, err := h.auditService.Export(c.Request().Context(), format, dateRange)
	if err != nil {
		return toHTTPError(err, "failed to export logs")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	return c.Blob(http.StatusOK, artifact.ContentType, artifact.Body)
}
