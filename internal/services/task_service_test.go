package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobimat/workshop-tasks/internal/constants"
	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	model "github.com/bobimat/workshop-tasks/internal/models"
)

var epoch = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func newTaskService(t *testing.T) (*TaskService, func() []model.LogEntry) {
	store := setupTestStore(t)
	svc := NewTaskService(store)
	svc.now = stepClock(epoch)

	allLogs := func() []model.LogEntry {
		entries, err := store.Logs.List(context.Background())
		require.NoError(t, err)
		return entries
	}
	return svc, allLogs
}

func TestTaskService_CreateTask(t *testing.T) {
	svc, allLogs := newTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, operator, "  T-100 ", "")
	require.NoError(t, err)

	assert.Equal(t, "T-100", task.Reference)
	assert.Equal(t, constants.StatusWorkshop, task.Status)
	assert.Nil(t, task.PreviousStatus)
	assert.Equal(t, operator.Email, task.UpdatedBy)

	entries := allLogs()
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].PreviousStatus)
	assert.Equal(t, constants.StatusWorkshop, entries[0].NewStatus)

	_, err = svc.CreateTask(ctx, operator, "T-100", constants.StatusQuote)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReference)
	assert.Len(t, allLogs(), 1, "failed create must not leave a log entry")
}

func TestTaskService_CreateTaskValidation(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, nil, "T-1", "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.CreateTask(ctx, operator, "   ", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateTask(ctx, operator, "T-1", "Perdido")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTaskService_TransitionStatus(t *testing.T) {
	svc, allLogs := newTaskService(t)
	ctx := context.Background()

	seeded := seedTask(t, svc.store, "T-100", constants.StatusWorkshop, epoch)
	callStart := epoch

	task, err := svc.TransitionStatus(ctx, operator, seeded.ID, constants.StatusQuote)
	require.NoError(t, err)

	assert.Equal(t, constants.StatusQuote, task.Status)
	require.NotNil(t, task.PreviousStatus)
	assert.Equal(t, constants.StatusWorkshop, *task.PreviousStatus)
	assert.Equal(t, operator.Email, task.UpdatedBy)

	stored, err := svc.GetTask(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusQuote, stored.Status)
	require.NotNil(t, stored.PreviousStatus)
	assert.Equal(t, constants.StatusWorkshop, *stored.PreviousStatus)

	entries := allLogs()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "T-100", entry.TaskReference)
	require.NotNil(t, entry.PreviousStatus)
	assert.Equal(t, constants.StatusWorkshop, *entry.PreviousStatus)
	assert.Equal(t, constants.StatusQuote, entry.NewStatus)
	assert.Equal(t, operator.Email, entry.UserEmail)
	assert.Equal(t, operator.Name, entry.UserName)
	assert.False(t, entry.Timestamp.Before(callStart))
	assert.True(t, entry.Timestamp.Equal(stored.UpdatedAt))
}

func TestTaskService_TransitionStatusChain(t *testing.T) {
	svc, allLogs := newTaskService(t)
	ctx := context.Background()

	seeded := seedTask(t, svc.store, "T-100", constants.StatusWorkshop, epoch)

	chain := []constants.TaskStatus{constants.StatusQuote, constants.StatusAwaitingPart, constants.StatusDone}
	previous := constants.StatusWorkshop
	for _, next := range chain {
		task, err := svc.TransitionStatus(ctx, operator, seeded.ID, next)
		require.NoError(t, err)
		assert.Equal(t, previous, *task.PreviousStatus)
		previous = next
	}

	assert.Len(t, allLogs(), len(chain))
}

func TestTaskService_TransitionStatusRejects(t *testing.T) {
	svc, allLogs := newTaskService(t)
	ctx := context.Background()

	seeded := seedTask(t, svc.store, "T-100", constants.StatusWorkshop, epoch)

	_, err := svc.TransitionStatus(ctx, nil, seeded.ID, constants.StatusQuote)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.TransitionStatus(ctx, operator, seeded.ID, "Perdido")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.TransitionStatus(ctx, operator, seeded.ID, constants.StatusWorkshop)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.TransitionStatus(ctx, operator, "missing", constants.StatusQuote)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	assert.Empty(t, allLogs())

	stored, err := svc.GetTask(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusWorkshop, stored.Status)
	assert.Nil(t, stored.PreviousStatus)
}

func TestTaskService_RenameReference(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	seeded := seedTask(t, svc.store, "T-100", constants.StatusQuote, epoch)
	for i := 0; i < 3; i++ {
		seedLog(t, svc.store, "T-100", constants.StatusWorkshop.Ptr(), constants.StatusQuote, epoch.Add(time.Duration(i)*time.Second))
	}

	task, err := svc.RenameReference(ctx, admin, seeded.ID, "T-200")
	require.NoError(t, err)
	assert.Equal(t, "T-200", task.Reference)
	assert.Equal(t, admin.Email, task.UpdatedBy)

	old, err := svc.store.Logs.ListByReference(ctx, "T-100")
	require.NoError(t, err)
	assert.Empty(t, old)

	renamed, err := svc.store.Logs.ListByReference(ctx, "T-200")
	require.NoError(t, err)
	require.Len(t, renamed, 4)

	markers := 0
	for _, entry := range renamed {
		if entry.IsRename() {
			markers++
			assert.Equal(t, constants.StatusQuote, entry.NewStatus)
			assert.Equal(t, admin.Email, entry.UserEmail)
		}
	}
	assert.Equal(t, 1, markers)

	history, err := svc.History(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
	assert.True(t, history[0].IsRename(), "marker is the newest entry")
}

func TestTaskService_RenameToTakenReference(t *testing.T) {
	svc, allLogs := newTaskService(t)
	ctx := context.Background()

	first := seedTask(t, svc.store, "T-100", constants.StatusWorkshop, epoch)
	seedTask(t, svc.store, "T-200", constants.StatusDone, epoch)
	seedLog(t, svc.store, "T-100", nil, constants.StatusWorkshop, epoch)
	seedLog(t, svc.store, "T-200", nil, constants.StatusDone, epoch)

	_, err := svc.RenameReference(ctx, admin, first.ID, "T-200")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReference)

	stored, err := svc.GetTask(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "T-100", stored.Reference)
	assert.Equal(t, "seed", stored.UpdatedBy)

	byRef := map[string]int{}
	for _, entry := range allLogs() {
		byRef[entry.TaskReference]++
	}
	assert.Equal(t, map[string]int{"T-100": 1, "T-200": 1}, byRef)
}

func TestTaskService_RenameToSameReferenceIsNoop(t *testing.T) {
	svc, allLogs := newTaskService(t)
	ctx := context.Background()

	seeded := seedTask(t, svc.store, "T-100", constants.StatusWorkshop, epoch)

	task, err := svc.RenameReference(ctx, operator, seeded.ID, " T-100 ")
	require.NoError(t, err)
	assert.Equal(t, "T-100", task.Reference)
	assert.Empty(t, allLogs())

	_, err = svc.RenameReference(ctx, operator, seeded.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTaskService_DeleteTask(t *testing.T) {
	svc, allLogs := newTaskService(t)
	ctx := context.Background()

	doomed := seedTask(t, svc.store, "T-100", constants.StatusDone, epoch)
	seedTask(t, svc.store, "T-300", constants.StatusDone, epoch)
	seedLog(t, svc.store, "T-100", nil, constants.StatusWorkshop, epoch)
	seedLog(t, svc.store, "T-100", constants.StatusWorkshop.Ptr(), constants.StatusDone, epoch.Add(time.Minute))
	seedLog(t, svc.store, "T-300", nil, constants.StatusDone, epoch)

	require.NoError(t, svc.DeleteTask(ctx, admin, doomed.ID))

	_, err := svc.GetTask(ctx, doomed.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	entries := allLogs()
	require.Len(t, entries, 1)
	assert.Equal(t, "T-300", entries[0].TaskReference)

	assert.ErrorIs(t, svc.DeleteTask(ctx, admin, doomed.ID), apperrors.ErrTaskNotFound)
}

func TestTaskService_DeleteTaskRequiresAdmin(t *testing.T) {
	svc, allLogs := newTaskService(t)
	ctx := context.Background()

	seeded := seedTask(t, svc.store, "T-100", constants.StatusDone, epoch)
	seedLog(t, svc.store, "T-100", nil, constants.StatusDone, epoch)

	assert.ErrorIs(t, svc.DeleteTask(ctx, operator, seeded.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteTask(ctx, nil, seeded.ID), apperrors.ErrUnauthenticated)

	_, err := svc.GetTask(ctx, seeded.ID)
	assert.NoError(t, err)
	assert.Len(t, allLogs(), 1)
}

func TestTaskService_ListTasksNewestFirst(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	older := seedTask(t, svc.store, "T-1", constants.StatusWorkshop, epoch)
	seedTask(t, svc.store, "T-2", constants.StatusWorkshop, epoch.Add(time.Second))

	_, err := svc.TransitionStatus(ctx, operator, older.ID, constants.StatusDone)
	require.NoError(t, err)

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "T-1", tasks[0].Reference)
}
