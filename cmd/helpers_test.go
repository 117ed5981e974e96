package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bobimat/workshop-tasks/internal/constants"
	model "github.com/bobimat/workshop-tasks/internal/models"
	repository "github.com/bobimat/workshop-tasks/internal/repositories"
)

// seedDriftedTask stores a task with no audit entries.
func seedDriftedTask(t *testing.T, store *repository.Store) {
	t.Helper()

	now := time.Now().UTC()
	require.NoError(t, store.Tasks.Create(context.Background(), &model.Task{
		Reference: "T-9",
		Status:    constants.StatusQuote,
		UpdatedBy: "ana@bobimat.es",
		UpdatedAt: now,
		CreatedAt: now,
	}))
}
