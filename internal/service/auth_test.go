package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mzhdanov/bugtrack/internal/models"
	"github.com/mzhdanov/bugtrack/internal/token"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "testuser", "password", models.RoleUser, true)

	before := time.Now().Add(-time.Second)
	user, raw, err := env.Auth.Login(ctx, "testuser", "password")
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.Equal(t, "testuser", user.Username)
	require.Empty(t, user.PasswordHash)
	require.NotNil(t, user.LastLogin)
	require.True(t, user.LastLogin.After(before))

	// The token immediately resolves back to the same user.
	resolved, err := env.Auth.ResolveSession(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
	require.Equal(t, user.Username, resolved.Username)
	require.Equal(t, user.Role, resolved.Role)

	// last_login was persisted, not just set on the returned copy.
	stored, err := env.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "testuser", "password", models.RoleUser, true)

	_, _, err := env.Auth.Login(ctx, "testuser", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUserSameError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "testuser", "password", models.RoleUser, true)

	_, _, errUnknown := env.Auth.Login(ctx, "nobody", "password")
	_, _, errWrongPw := env.Auth.Login(ctx, "testuser", "wrong")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "ghost", "password", models.RoleUser, false)

	_, _, err := env.Auth.Login(context.Background(), "ghost", "password")
	require.ErrorIs(t, err, ErrAccountInactive)
}

func TestResolveSessionErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "testuser", "password", models.RoleUser, true)

	_, err := env.Auth.ResolveSession(ctx, "garbage")
	require.ErrorIs(t, err, token.ErrMalformedToken)

	// Signed with the wrong secret.
	forged, err := token.NewCodec([]byte("other-secret"), time.Hour).Issue(user.ID, "testuser", models.RoleUser)
	require.NoError(t, err)
	_, err = env.Auth.ResolveSession(ctx, forged)
	require.ErrorIs(t, err, token.ErrInvalidSignature)

	// Token for a user row that no longer exists.
	raw, err := env.Codec.Issue(user.ID+1000, "phantom", models.RoleUser)
	require.NoError(t, err)
	_, err = env.Auth.ResolveSession(ctx, raw)
	require.ErrorIs(t, err, ErrUserNotFound)

	// Deactivation invalidates existing sessions.
	_, raw, err = env.Auth.Login(ctx, "testuser", "password")
	require.NoError(t, err)
	require.NoError(t, env.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)
	_, err = env.Auth.ResolveSession(ctx, raw)
	require.ErrorIs(t, err, ErrAccountInactive)
}

func TestLogoutRevokes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "testuser", "password", models.RoleUser, true)

	_, raw, err := env.Auth.Login(ctx, "testuser", "password")
	require.NoError(t, err)

	// The token still passes signature and expiry checks on its own.
	_, err = env.Codec.Verify(raw)
	require.NoError(t, err)

	env.Auth.Logout(ctx, raw)

	_, err = env.Auth.ResolveSession(ctx, raw)
	require.ErrorIs(t, err, ErrTokenInvalidated)

	// Double logout and garbage logout are benign.
	env.Auth.Logout(ctx, raw)
	env.Auth.Logout(ctx, "never.was.valid")
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.Auth.Register(ctx, RegisterInput{
		Username: "newbie",
		FullName: "New Person",
		Email:    "newbie@example.com",
		Password: "password",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, user.Role)
	require.Empty(t, user.PasswordHash)

	_, err = env.Auth.Register(ctx, RegisterInput{
		Username: "newbie",
		Email:    "other@example.com",
		Password: "password",
	})
	require.ErrorIs(t, err, ErrUserExists)

	_, _, err = env.Auth.Login(ctx, "newbie", "password")
	require.NoError(t, err)
}
