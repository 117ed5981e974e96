package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobimat/workshop-tasks/internal/constants"
	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	"github.com/bobimat/workshop-tasks/internal/metrics"
	model "github.com/bobimat/workshop-tasks/internal/models"
	repository "github.com/bobimat/workshop-tasks/internal/repositories"
)

const (
	opAddUser     = "add_user"
	opUpdateUser  = "update_user"
	opDeleteUser  = "delete_user"
	opSetPassword = "set_password"
)

type UserInput struct {
	Name  string
	Email string
	Role  constants.Role
}

type UserService struct {
	store    *repository.Store
	validate *validator.Validate
	now      func() time.Time
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{
		store:    store,
		validate: validator.New(),
		now:      utcNow,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.Users.List(ctx)
}

// AddUser creates a user. Any password left under the email by an earlier
// account is discarded, so a new administrator must be given their own.
func (s *UserService) AddUser(ctx context.Context, actor *model.User, input UserInput) (user *model.User, err error) {
	start := time.Now()
	defer func() { metrics.Observe(opAddUser, start, err) }()

	if err = s.ensureAdmin(ctx, actor); err != nil {
		return nil, err
	}
	if input, err = s.normalize(input); err != nil {
		return nil, err
	}

	user = &model.User{
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: s.now(),
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Credentials.Delete(ctx, user.Email)
	})
	if err != nil {
		logFailure(ctx, opAddUser, err, slog.String("email", input.Email))
		return nil, err
	}

	slog.InfoContext(ctx, "user added", slog.String("user_id", user.ID), slog.String("by", actor.Email))
	return user, nil
}

// UpdateUser changes name, email and role of an existing user. The password
// follows an email change and is dropped when the user stops being an
// administrator.
func (s *UserService) UpdateUser(ctx context.Context, actor *model.User, id string, input UserInput) (user *model.User, err error) {
	start := time.Now()
	defer func() { metrics.Observe(opUpdateUser, start, err) }()

	if err = s.ensureAdmin(ctx, actor); err != nil {
		return nil, err
	}
	if input, err = s.normalize(input); err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Users.FindByID(ctx, id)
		if err != nil {
			return err
		}

		update := &model.User{ID: id, Name: input.Name, Email: input.Email, Role: input.Role}
		if err := tx.Users.Update(ctx, update); err != nil {
			return err
		}

		if input.Role != constants.RoleAdmin {
			if err := tx.Credentials.Delete(ctx, current.Email); err != nil {
				return err
			}
		} else if err := tx.Credentials.Rekey(ctx, current.Email, input.Email); err != nil {
			return err
		}

		user, err = tx.Users.FindByID(ctx, id)
		return err
	})
	if err != nil {
		logFailure(ctx, opUpdateUser, err, slog.String("user_id", id))
		return nil, err
	}

	slog.InfoContext(ctx, "user updated", slog.String("user_id", id), slog.String("by", actor.Email))
	return user, nil
}

// DeleteUser removes a user and their password once the caller has confirmed
// the deletion.
func (s *UserService) DeleteUser(ctx context.Context, actor *model.User, id string, confirmed bool) (err error) {
	start := time.Now()
	defer func() { metrics.Observe(opDeleteUser, start, err) }()

	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}
	if err = s.ensureAdmin(ctx, actor); err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Users.Delete(ctx, user.ID); err != nil {
			return err
		}
		return tx.Credentials.Delete(ctx, user.Email)
	})
	if err != nil {
		logFailure(ctx, opDeleteUser, err, slog.String("user_id", id))
		return err
	}

	slog.InfoContext(ctx, "user deleted", slog.String("user_id", id), slog.String("by", actor.Email))
	return nil
}

// SetPassword stores the sign-in password of an administrator.
func (s *UserService) SetPassword(ctx context.Context, email, password string) (err error) {
	start := time.Now()
	defer func() { metrics.Observe(opSetPassword, start, err) }()

	if password == "" {
		return apperrors.Validation("password is required")
	}

	user, err := s.store.Users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return apperrors.Validation("only administrators sign in with a password")
	}

	return s.storeCredential(ctx, s.store, user.Email, password)
}

// Bootstrap creates the first administrator of an empty directory.
func (s *UserService) Bootstrap(ctx context.Context, name, email, password string) (*model.User, error) {
	input, err := s.normalize(UserInput{Name: name, Email: email, Role: constants.RoleAdmin})
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, apperrors.Validation("password is required")
	}

	user := &model.User{
		Name:      input.Name,
		Email:     input.Email,
		Role:      constants.RoleAdmin,
		CreatedAt: s.now(),
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		count, err := tx.Users.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrAlreadyBootstrapped
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return s.storeCredential(ctx, tx, user.Email, password)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "administrator bootstrapped", slog.String("user_id", user.ID))
	return user, nil
}

func (s *UserService) storeCredential(ctx context.Context, store *repository.Store, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return store.Credentials.Upsert(ctx, &model.Credential{
		Email:        email,
		PasswordHash: string(hash),
		UpdatedAt:    s.now(),
	})
}

// ensureAdmin looks the actor up again instead of trusting the role carried
// by the session.
func (s *UserService) ensureAdmin(ctx context.Context, actor *model.User) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	fresh, err := s.store.Users.FindByEmail(ctx, actor.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	if !fresh.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *UserService) normalize(input UserInput) (UserInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if input.Name == "" {
		return input, apperrors.Validation("name is required")
	}
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return input, apperrors.Validation("email %q is not valid", input.Email)
	}
	if input.Role == "" {
		input.Role = constants.RoleOperator
	}
	if !input.Role.Valid() {
		return input, apperrors.Validation("unknown role %q", input.Role)
	}
	return input, nil
}
