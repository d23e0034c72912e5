package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/session"
	"github.com/iota-uz/campus-sdk/modules/core/services"
)

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	registered := registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)

	u, sess, err := f.authService.Login(context.Background(), "dana@test.local", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID(), u.ID())
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, registered.ID(), sess.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newFixture(t)
	registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)

	_, _, err := f.authService.Login(context.Background(), "dana@test.local", "nope")
	assert.ErrorIs(t, err, services.ErrInvalidPassword)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.authService.Login(context.Background(), "ghost@test.local", "x")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestAuthService_Authorize(t *testing.T) {
	f := newFixture(t)
	registered := registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)
	_, sess, err := f.authService.Login(context.Background(), "dana@test.local", "secret123")
	require.NoError(t, err)

	u, _, err := f.authService.Authorize(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID(), u.ID())
}

func TestAuthService_Authorize_ExpiredSessionDropped(t *testing.T) {
	f := newFixture(t)
	registered := registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)
	expired := &session.Session{
		Token:     "stale",
		UserID:    registered.ID(),
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, f.sessions.Create(context.Background(), expired))

	_, _, err := f.authService.Authorize(context.Background(), "stale")
	assert.ErrorIs(t, err, services.ErrSessionExpired)

	_, err = f.sessions.GetByToken(context.Background(), "stale")
	assert.ErrorIs(t, err, session.ErrNotFound, "expired session is deleted on sight")
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)
	_, sess, err := f.authService.Login(context.Background(), "dana@test.local", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.authService.Logout(context.Background(), sess.Token))
	_, _, err = f.authService.Authorize(context.Background(), sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
