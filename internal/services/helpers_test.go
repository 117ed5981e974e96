package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bobimat/workshop-tasks/internal/constants"
	model "github.com/bobimat/workshop-tasks/internal/models"
	repository "github.com/bobimat/workshop-tasks/internal/repositories"
)

func setupTestStore(t *testing.T) *repository.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, repository.Migrate(db), "failed to migrate database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return repository.NewStore(db)
}

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

var (
	admin = &model.User{
		Name:  "Ana Admin",
		Email: "ana@bobimat.es",
		Role:  constants.RoleAdmin,
	}
	operator = &model.User{
		Name:  "Luis Operario",
		Email: "luis@bobimat.es",
		Role:  constants.RoleOperator,
	}
)

func seedUser(t *testing.T, store *repository.Store, u *model.User) *model.User {
	t.Helper()

	user := *u
	user.ID = ""
	user.CreatedAt = time.Now().UTC()
	require.NoError(t, store.Users.Create(context.Background(), &user))
	return &user
}

func seedTask(t *testing.T, store *repository.Store, reference string, status constants.TaskStatus, at time.Time) *model.Task {
	t.Helper()

	task := &model.Task{
		Reference: reference,
		Status:    status,
		UpdatedBy: "seed",
		UpdatedAt: at,
		CreatedAt: at,
	}
	require.NoError(t, store.Tasks.Create(context.Background(), task))
	return task
}

func seedLog(t *testing.T, store *repository.Store, reference string, previous *constants.TaskStatus, next constants.TaskStatus, at time.Time) {
	t.Helper()

	require.NoError(t, store.Logs.Append(context.Background(), &model.LogEntry{
		TaskReference:  reference,
		PreviousStatus: previous,
		NewStatus:      next,
		UserEmail:      "seed@bobimat.es",
		UserName:       "seed",
		Timestamp:      at,
	}))
}
