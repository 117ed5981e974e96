package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/bobimat/workshop-tasks/internal/models"
)

type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Append(ctx context.Context, entry *model.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *LogRepository) List(ctx context.Context) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	err := r.db.WithContext(ctx).Order("timestamp desc").Find(&entries).Error
	return entries, err
}

func (r *LogRepository) ListByReference(ctx context.Context, reference string) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	err := r.db.WithContext(ctx).
		Where("task_reference = ?", reference).
		Order("timestamp desc").
		Find(&entries).Error
	return entries, err
}

// Latest returns the newest entry for reference, or nil when none exists.
func (r *LogRepository) Latest(ctx context.Context, reference string) (*model.LogEntry, error) {
	var entry model.LogEntry
	err := r.db.WithContext(ctx).
		Where("task_reference = ?", reference).
		Order("timestamp desc").
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Repoint moves every entry of oldReference to newReference.
func (r *LogRepository) Repoint(ctx context.Context, oldReference, newReference string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.LogEntry{}).
		Where("task_reference = ?", oldReference).
		Update("task_reference", newReference)
	return res.RowsAffected, res.Error
}

func (r *LogRepository) DeleteByReference(ctx context.Context, reference string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("task_reference = ?", reference).
		Delete(&model.LogEntry{})
	return res.RowsAffected, res.Error
}
