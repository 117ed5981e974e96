package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	model "github.com/bobimat/workshop-tasks/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Create(task).Error
	return translate(err, nil, apperrors.ErrDuplicateReference)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound, nil)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("updated_at desc").Find(&tasks).Error
	return tasks, err
}

// ListBatch pages through tasks in creation order.
func (r *TaskRepository) ListBatch(ctx context.Context, offset, limit int) ([]model.Task, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Order("created_at asc").Order("id asc").
		Offset(offset).Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, task *model.Task) error {
	return r.update(ctx, task.ID, map[string]interface{}{
		"status":          task.Status,
		"previous_status": task.PreviousStatus,
		"updated_by":      task.UpdatedBy,
		"updated_at":      task.UpdatedAt,
	})
}

func (r *TaskRepository) UpdateReference(ctx context.Context, task *model.Task) error {
	return r.update(ctx, task.ID, map[string]interface{}{
		"reference":  task.Reference,
		"updated_by": task.UpdatedBy,
		"updated_at": task.UpdatedAt,
	})
}

func (r *TaskRepository) update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(fields)

	if res.Error != nil {
		return translate(res.Error, nil, apperrors.ErrDuplicateReference)
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}
