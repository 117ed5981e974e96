package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bobimat/workshop-tasks/internal/constants"
	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	model "github.com/bobimat/workshop-tasks/internal/models"
)

func requireActor(actor *model.User) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

func newLogEntry(
	reference string,
	previous *constants.TaskStatus,
	next constants.TaskStatus,
	actor *model.User,
	at time.Time,
) *model.LogEntry {
	return &model.LogEntry{
		TaskReference:  reference,
		PreviousStatus: previous,
		NewStatus:      next,
		UserEmail:      actor.Email,
		UserName:       actor.Name,
		Timestamp:      at,
	}
}

// logFailure reports server-side failures loudly and client errors quietly.
func logFailure(ctx context.Context, operation string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("operation", operation), slog.Any("error", err))
	if apperrors.StatusCode(err) >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "operation failed", attrs...)
		return
	}
	slog.DebugContext(ctx, "operation rejected", attrs...)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
