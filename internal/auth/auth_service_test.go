package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ashmit12092000/ems/internal/auth"
	autherrors "github.com/Ashmit12092000/ems/internal/auth/errors"
	"github.com/Ashmit12092000/ems/internal/auth/token"
	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store/storefake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (auth.Service, *storefake.Store, *token.Manager) {
	t.Helper()
	st := storefake.New()
	tokens := token.NewManager("0123456789abcdef-test", 15*time.Minute, time.Hour)
	return auth.NewService(st, tokens), st, tokens
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newService(t)

	t.Run("success register then login", func(t *testing.T) {
		res, err := svc.Register(ctx, nil, auth.RegisterRequest{Username: "alice", Password: "secret1", Role: domain.RoleHOD})
		require.NoError(t, err)
		assert.Equal(t, "alice", res.Username)
		assert.Equal(t, domain.RoleHOD, res.Role)

		pair, user, err := svc.Login(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, res.ID, user.ID)
		assert.Equal(t, int64(15*60), pair.ExpiresIn)

		claims, err := tokens.Parse(pair.AccessToken, token.KindAccess)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleHOD, claims.Role)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("negative duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, nil, auth.RegisterRequest{Username: "alice", Password: "secret2", Role: domain.RoleEmployee})
		assert.ErrorIs(t, err, autherrors.ErrUsernameTaken)
	})

	t.Run("negative invalid role", func(t *testing.T) {
		_, err := svc.Register(ctx, nil, auth.RegisterRequest{Username: "bob", Password: "secret2", Role: "Admin"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Register_HODRole(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	first, err := svc.Register(ctx, nil, auth.RegisterRequest{Username: "hana", Password: "secret1", Role: domain.RoleHOD})
	require.NoError(t, err, "first HOD bootstraps itself")

	t.Run("negative anonymous second HOD", func(t *testing.T) {
		_, err := svc.Register(ctx, nil, auth.RegisterRequest{Username: "mallory", Password: "secret1", Role: domain.RoleHOD})
		assert.ErrorIs(t, err, autherrors.ErrHODRegistrationForbidden)
	})

	t.Run("negative employee cannot create HOD", func(t *testing.T) {
		emp := &domain.Actor{ID: uuid.New(), Username: "erin", Role: domain.RoleEmployee}
		_, err := svc.Register(ctx, emp, auth.RegisterRequest{Username: "mallory", Password: "secret1", Role: domain.RoleHOD})
		assert.ErrorIs(t, err, autherrors.ErrHODRegistrationForbidden)
	})

	t.Run("success HOD creates HOD", func(t *testing.T) {
		hod := &domain.Actor{ID: uuid.MustParse(first.ID), Username: "hana", Role: domain.RoleHOD}
		res, err := svc.Register(ctx, hod, auth.RegisterRequest{Username: "henry", Password: "secret1", Role: domain.RoleHOD})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleHOD, res.Role)
	})

	t.Run("success anonymous employee", func(t *testing.T) {
		_, err := svc.Register(ctx, nil, auth.RegisterRequest{Username: "erin", Password: "secret1", Role: domain.RoleEmployee})
		assert.NoError(t, err)
	})
}

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Register(ctx, nil, auth.RegisterRequest{Username: "carol", Password: "secret1", Role: domain.RoleEmployee})
	require.NoError(t, err)
	pair, _, err := svc.Login(ctx, "carol", "secret1")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		next, user, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, next.AccessToken)
		assert.Equal(t, "carol", user.Username)
	})

	t.Run("negative access token is not a refresh token", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_MeAndChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newService(t)

	res, err := svc.Register(ctx, nil, auth.RegisterRequest{Username: "dave", Password: "secret1", Role: domain.RoleEmployee})
	require.NoError(t, err)
	id := uuid.MustParse(res.ID)

	me, err := svc.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "dave", me.Username)

	_, err = svc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)

	err = svc.ChangePassword(ctx, id, auth.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.ErrorIs(t, err, autherrors.ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, id, auth.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))
	_, _, err = svc.Login(ctx, "dave", "secret2")
	assert.NoError(t, err)

	st.FailOn("UpdatePassword", errors.New("db down"))
	err = svc.ChangePassword(ctx, id, auth.ChangePasswordRequest{CurrentPassword: "secret2", NewPassword: "secret3"})
	assert.Error(t, err)
}
