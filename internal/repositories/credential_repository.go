package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "github.com/bobimat/workshop-tasks/internal/models"
)

var ErrCredentialNotFound = errors.New("credential not found")

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Upsert(ctx context.Context, credential *model.Credential) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
		}).
		Create(credential).Error
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*model.Credential, error) {
	var credential model.Credential
	err := r.db.WithContext(ctx).First(&credential, "email = ?", email).Error
	if err != nil {
		return nil, translate(err, ErrCredentialNotFound, nil)
	}
	return &credential, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&model.Credential{}).Error
}

// Rekey moves the credential stored under oldEmail to newEmail, replacing
// anything already stored under newEmail. It is a no-op when oldEmail has no
// credential.
func (r *CredentialRepository) Rekey(ctx context.Context, oldEmail, newEmail string) error {
	if oldEmail == newEmail {
		return nil
	}
	if err := r.Delete(ctx, newEmail); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.Credential{}).
		Where("email = ?", oldEmail).
		Update("email", newEmail).Error
}
