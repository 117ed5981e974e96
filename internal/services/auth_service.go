package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	model "github.com/bobimat/workshop-tasks/internal/models"
	repository "github.com/bobimat/workshop-tasks/internal/repositories"
	"github.com/bobimat/workshop-tasks/internal/session"
)

// Session is the identity a request acts as.
type Session struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User.IsAdmin()
}

type AuthService struct {
	store    *repository.Store
	sessions session.Store
	validate *validator.Validate
}

func NewAuthService(store *repository.Store, sessions session.Store) *AuthService {
	return &AuthService{
		store:    store,
		sessions: sessions,
		validate: validator.New(),
	}
}

// Login signs a user in by email. Administrators must also present a password
// matching their stored credential; operators sign in with the email alone.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apperrors.Validation("email %q is not valid", email)
	}

	user, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotAuthorized
		}
		return nil, err
	}

	if user.IsAdmin() {
		if password == "" {
			return nil, apperrors.ErrMissingCredential
		}
		if err := s.verifyPassword(ctx, user.Email, password); err != nil {
			return nil, err
		}
	}

	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, user.ID); err != nil {
		logFailure(ctx, "login", err, slog.String("email", email))
		return nil, err
	}

	slog.InfoContext(ctx, "user signed in", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return &Session{Token: token, User: user}, nil
}

// Resolve loads the session's user afresh so role changes apply immediately.
func (s *AuthService) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			_ = s.sessions.Delete(ctx, token)
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}

	return &Session{Token: token, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) verifyPassword(ctx context.Context, email, password string) error {
	credential, err := s.store.Credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return apperrors.ErrInvalidCredential
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return apperrors.ErrInvalidCredential
	}
	return nil
}
