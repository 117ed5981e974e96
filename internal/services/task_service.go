package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bobimat/workshop-tasks/internal/constants"
	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	"github.com/bobimat/workshop-tasks/internal/metrics"
	model "github.com/bobimat/workshop-tasks/internal/models"
	repository "github.com/bobimat/workshop-tasks/internal/repositories"
)

const (
	opCreateTask       = "create_task"
	opTransitionStatus = "transition_status"
	opRenameReference  = "rename_reference"
	opDeleteTask       = "delete_task"
)

// TaskService changes task status and reference. Every change and its audit
// entries are written in one transaction.
type TaskService struct {
	store *repository.Store
	now   func() time.Time
}

func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{
		store: store,
		now:   utcNow,
	}
}

// CreateTask registers a task with an opening log entry that has no previous
// status. An empty status starts the task in the workshop.
func (s *TaskService) CreateTask(
	ctx context.Context,
	actor *model.User,
	reference string,
	status constants.TaskStatus,
) (task *model.Task, err error) {
	start := time.Now()
	defer func() { metrics.Observe(opCreateTask, start, err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, apperrors.Validation("reference is required")
	}
	if status == "" {
		status = constants.StatusWorkshop
	}
	if !status.Valid() {
		return nil, apperrors.Validation("unknown status %q", status)
	}

	now := s.now()
	task = &model.Task{
		Reference: reference,
		Status:    status,
		UpdatedBy: actor.Email,
		UpdatedAt: now,
		CreatedAt: now,
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}
		return tx.Logs.Append(ctx, newLogEntry(reference, nil, status, actor, now))
	})
	if err != nil {
		logFailure(ctx, opCreateTask, err, slog.String("reference", reference))
		return nil, err
	}

	slog.InfoContext(ctx, "task created", slog.String("task_id", task.ID), slog.String("reference", reference))
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.store.Tasks.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.store.Tasks.List(ctx)
}

// History returns the audit entries of a task, newest first.
func (s *TaskService) History(ctx context.Context, id string) ([]model.LogEntry, error) {
	task, err := s.store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.Logs.ListByReference(ctx, task.Reference)
}

// TransitionStatus moves a task to newStatus, keeping the status it leaves in
// PreviousStatus, and appends exactly one log entry for the change. Moving a
// task to the status it already has is rejected so that entries with equal
// previous and new status only ever mark renames.
func (s *TaskService) TransitionStatus(
	ctx context.Context,
	actor *model.User,
	id string,
	newStatus constants.TaskStatus,
) (task *model.Task, err error) {
	start := time.Now()
	defer func() { metrics.Observe(opTransitionStatus, start, err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}
	if !newStatus.Valid() {
		return nil, apperrors.Validation("unknown status %q", newStatus)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Tasks.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == newStatus {
			return apperrors.Validation("task is already in status %q", newStatus)
		}

		now := s.now()
		previous := current.Status

		current.PreviousStatus = &previous
		current.Status = newStatus
		current.UpdatedBy = actor.Email
		current.UpdatedAt = now

		if err := tx.Tasks.UpdateStatus(ctx, current); err != nil {
			return err
		}
		if err := tx.Logs.Append(ctx, newLogEntry(current.Reference, &previous, newStatus, actor, now)); err != nil {
			return err
		}

		task = current
		return nil
	})
	if err != nil {
		logFailure(ctx, opTransitionStatus, err, slog.String("task_id", id))
		return nil, err
	}

	slog.InfoContext(ctx, "task status changed",
		slog.String("task_id", task.ID),
		slog.String("from", string(*task.PreviousStatus)),
		slog.String("to", string(task.Status)),
		slog.String("by", actor.Email),
	)
	return task, nil
}

// RenameReference re-points the task's log entries to newReference, renames
// the task and appends a marker entry whose previous and new status are both
// the current status. A reference held by another task fails with
// ErrDuplicateReference and leaves every record unchanged.
func (s *TaskService) RenameReference(
	ctx context.Context,
	actor *model.User,
	id string,
	newReference string,
) (task *model.Task, err error) {
	start := time.Now()
	defer func() { metrics.Observe(opRenameReference, start, err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}

	newReference = strings.TrimSpace(newReference)
	if newReference == "" {
		return nil, apperrors.Validation("reference is required")
	}

	var moved int64
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Tasks.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Reference == newReference {
			task = current
			return nil
		}

		oldReference := current.Reference
		now := s.now()

		if moved, err = tx.Logs.Repoint(ctx, oldReference, newReference); err != nil {
			return err
		}

		current.Reference = newReference
		current.UpdatedBy = actor.Email
		current.UpdatedAt = now
		if err := tx.Tasks.UpdateReference(ctx, current); err != nil {
			return err
		}

		status := current.Status
		if err := tx.Logs.Append(ctx, newLogEntry(newReference, &status, status, actor, now)); err != nil {
			return err
		}

		task = current
		return nil
	})
	if err != nil {
		logFailure(ctx, opRenameReference, err, slog.String("task_id", id), slog.String("reference", newReference))
		return nil, err
	}

	slog.InfoContext(ctx, "task reference renamed",
		slog.String("task_id", task.ID),
		slog.String("reference", task.Reference),
		slog.Int64("entries_moved", moved),
	)
	return task, nil
}

// DeleteTask removes a task and its audit entries. Only administrators may
// delete; the role is checked before anything is read or written.
func (s *TaskService) DeleteTask(ctx context.Context, actor *model.User, id string) (err error) {
	start := time.Now()
	defer func() { metrics.Observe(opDeleteTask, start, err) }()

	if err = requireActor(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}

	var removed int64
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if removed, err = tx.Logs.DeleteByReference(ctx, task.Reference); err != nil {
			return err
		}
		return tx.Tasks.Delete(ctx, task.ID)
	})
	if err != nil {
		logFailure(ctx, opDeleteTask, err, slog.String("task_id", id))
		return err
	}

	slog.InfoContext(ctx, "task deleted",
		slog.String("task_id", id),
		slog.Int64("entries_removed", removed),
		slog.String("by", actor.Email),
	)
	return nil
}
