package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bobimat/workshop-tasks/internal/constants"
	"github.com/bobimat/workshop-tasks/internal/metrics"
	model "github.com/bobimat/workshop-tasks/internal/models"
	repository "github.com/bobimat/workshop-tasks/internal/repositories"
)

// SystemActor signs the corrective entries written by Repair.
var SystemActor = &model.User{Email: "system", Name: "system"}

// Drift is a task whose status is not the new status of its newest log entry.
// LastLogged is nil when the task has no entries at all.
type Drift struct {
	Task       model.Task            `json:"task"`
	LastLogged *constants.TaskStatus `json:"last_logged"`
}

type ReconcileService struct {
	store     *repository.Store
	batchSize int
	now       func() time.Time
}

func NewReconcileService(store *repository.Store, batchSize int) *ReconcileService {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &ReconcileService{
		store:     store,
		batchSize: batchSize,
		now:       utcNow,
	}
}

func (s *ReconcileService) Check(ctx context.Context) ([]Drift, error) {
	var drifts []Drift

	for offset := 0; ; offset += s.batchSize {
		tasks, err := s.store.Tasks.ListBatch(ctx, offset, s.batchSize)
		if err != nil {
			return nil, err
		}

		for _, task := range tasks {
			latest, err := s.store.Logs.Latest(ctx, task.Reference)
			if err != nil {
				return nil, err
			}
			if latest == nil {
				drifts = append(drifts, Drift{Task: task})
				continue
			}
			if latest.NewStatus != task.Status {
				logged := latest.NewStatus
				drifts = append(drifts, Drift{Task: task, LastLogged: &logged})
			}
		}

		if len(tasks) < s.batchSize {
			break
		}
	}

	metrics.AuditDrift.Set(float64(len(drifts)))
	return drifts, nil
}

// Repair appends one entry per drift bridging the last logged status to the
// task's current status. It returns how many entries were written.
func (s *ReconcileService) Repair(ctx context.Context, drifts []Drift) (int, error) {
	repaired := 0

	for _, drift := range drifts {
		entry := newLogEntry(drift.Task.Reference, drift.LastLogged, drift.Task.Status, SystemActor, s.now())
		if err := s.store.Logs.Append(ctx, entry); err != nil {
			return repaired, err
		}
		repaired++
	}

	if repaired > 0 {
		slog.InfoContext(ctx, "audit drift repaired", slog.Int("entries", repaired))
	}
	return repaired, nil
}

// Run checks for drift every interval until ctx is done. It only reports.
func (s *ReconcileService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.checkOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *ReconcileService) checkOnce(ctx context.Context) {
	drifts, err := s.Check(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "reconcile: check failed", slog.Any("error", err))
		return
	}

	for _, drift := range drifts {
		slog.WarnContext(ctx, "reconcile: task status not in audit log",
			slog.String("task_id", drift.Task.ID),
			slog.String("reference", drift.Task.Reference),
			slog.String("status", string(drift.Task.Status)),
		)
	}
}
