package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	model "github.com/bobimat/workshop-tasks/internal/models"
)

// Store groups the repositories that share one database handle. Repositories
// obtained from the tx argument of Transaction run inside that transaction.
type Store struct {
	db          *gorm.DB
	Tasks       *TaskRepository
	Logs        *LogRepository
	Users       *UserRepository
	Credentials *CredentialRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Tasks:       NewTaskRepository(db),
		Logs:        NewLogRepository(db),
		Users:       NewUserRepository(db),
		Credentials: NewCredentialRepository(db),
	}
}

func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}

// translate maps driver-level errors onto the caller's sentinels. gorm must be
// opened with TranslateError for duplicate keys to be recognised.
func translate(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	}
	return err
}
