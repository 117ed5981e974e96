package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobimat/workshop-tasks/internal/constants"
	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	"github.com/bobimat/workshop-tasks/internal/session"
)

func newAuthService(t *testing.T) (*AuthService, *UserService) {
	store := setupTestStore(t)
	seedUser(t, store, admin)
	seedUser(t, store, operator)

	users := NewUserService(store)
	require.NoError(t, users.SetPassword(context.Background(), admin.Email, "s3cret"))

	return NewAuthService(store, session.NewMemoryStore()), users
}

func TestAuthService_LoginOperatorWithoutPassword(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	sess, err := auth.Login(ctx, operator.Email, "")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, operator.Email, sess.User.Email)
	assert.False(t, sess.IsAdmin())

	resolved, err := auth.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, resolved.User.ID)
}

func TestAuthService_LoginAdmin(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, admin.Email, "")
	assert.ErrorIs(t, err, apperrors.ErrMissingCredential)

	_, err = auth.Login(ctx, admin.Email, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

	sess, err := auth.Login(ctx, admin.Email, "s3cret")
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
}

func TestAuthService_LoginUnknownOrMalformed(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "nadie@bobimat.es", "")
	assert.ErrorIs(t, err, apperrors.ErrUserNotAuthorized)

	_, err = auth.Login(ctx, "nadie", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_AdminWithoutStoredCredential(t *testing.T) {
	store := setupTestStore(t)
	seedUser(t, store, admin)
	auth := NewAuthService(store, session.NewMemoryStore())

	_, err := auth.Login(context.Background(), admin.Email, "anything")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestAuthService_ResolveSeesRoleChanges(t *testing.T) {
	auth, users := newAuthService(t)
	ctx := context.Background()

	sess, err := auth.Login(ctx, admin.Email, "s3cret")
	require.NoError(t, err)

	op, err := users.store.Users.FindByEmail(ctx, operator.Email)
	require.NoError(t, err)
	_, err = users.UpdateUser(ctx, sess.User, sess.User.ID, UserInput{Name: sess.User.Name, Email: sess.User.Email, Role: constants.RoleOperator})
	require.NoError(t, err)

	resolved, err := auth.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.False(t, resolved.IsAdmin())

	err = users.DeleteUser(ctx, resolved.User, op.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthService_LogoutAndDeletedUsers(t *testing.T) {
	auth, users := newAuthService(t)
	ctx := context.Background()

	adminSess, err := auth.Login(ctx, admin.Email, "s3cret")
	require.NoError(t, err)
	opSess, err := auth.Login(ctx, operator.Email, "")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, adminSess.Token))
	_, err = auth.Resolve(ctx, adminSess.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	adminSess, err = auth.Login(ctx, admin.Email, "s3cret")
	require.NoError(t, err)
	require.NoError(t, users.DeleteUser(ctx, adminSess.User, opSess.User.ID, true))

	_, err = auth.Resolve(ctx, opSess.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = auth.Resolve(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
