package services

import (
	"context"
	"time"

	"github.com/bobimat/workshop-tasks/internal/constants"
	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	"github.com/bobimat/workshop-tasks/internal/export"
	"github.com/bobimat/workshop-tasks/internal/metrics"
	model "github.com/bobimat/workshop-tasks/internal/models"
	repository "github.com/bobimat/workshop-tasks/internal/repositories"
)

const opExportLogs = "export_logs"

type AuditService struct {
	logs     *repository.LogRepository
	renderer *export.Renderer
}

func NewAuditService(logs *repository.LogRepository, renderer *export.Renderer) *AuditService {
	return &AuditService{
		logs:     logs,
		renderer: renderer,
	}
}

// ParseDateRange validates a date range, defaulting an empty one.
func ParseDateRange(s string) (constants.DateRange, error) {
	if s == "" {
		return constants.DefaultDateRange, nil
	}
	r := constants.DateRange(s)
	if !r.Valid() {
		return "", apperrors.Validation("unknown date range %q", s)
	}
	return r, nil
}

// ListEntries returns every log entry, newest first. The date range is not
// applied as a filter.
// TODO: apply dateRange once the product defines its boundaries (calendar vs rolling windows).
func (s *AuditService) ListEntries(ctx context.Context, dateRange constants.DateRange) ([]model.LogEntry, error) {
	return s.logs.List(ctx)
}

func (s *AuditService) Export(
	ctx context.Context,
	format export.Format,
	dateRange constants.DateRange,
) (artifact *export.Artifact, err error) {
	start := time.Now()
	defer func() { metrics.Observe(opExportLogs, start, err) }()

	entries, err := s.ListEntries(ctx, dateRange)
	if err != nil {
		logFailure(ctx, opExportLogs, err)
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.Validation("no entries to export")
	}

	artifact, err = s.renderer.Render(entries, format, dateRange)
	if err != nil {
		logFailure(ctx, opExportLogs, err)
		return nil, err
	}
	return artifact, nil
}
