package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/passwordreset"
	"github.com/iota-uz/campus-sdk/modules/core/services"
	"github.com/iota-uz/campus-sdk/pkg/composables"
)

func TestUserService_Register(t *testing.T) {
	f := newFixture(t)
	created, err := f.userService.Register(context.Background(), &user.CreateDTO{
		FirstName:  "דנה",
		LastName:   "כהן",
		Email:      "dana@test.local",
		IDNumber:   "123456789",
		Phone:      "050-1234567",
		Password:   "secret123",
		Role:       "student",
		Department: "cs",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleStudent, created.Role())
	assert.Equal(t, "123456789", created.IDNumber())
	assert.Equal(t, "050-1234567", created.Phone())
	assert.True(t, created.CheckPassword("secret123"))
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	f := newFixture(t)
	registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)

	_, err := f.userService.Register(context.Background(), &user.CreateDTO{
		FirstName: "a",
		LastName:  "b",
		Email:     "dana@test.local",
		IDNumber:  "123456789",
		Password:  "secret123",
		Role:      "student",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUserService_Register_IDNumberTaken(t *testing.T) {
	f := newFixture(t)
	dto := &user.CreateDTO{
		FirstName: "דנה",
		LastName:  "כהן",
		Email:     "dana@test.local",
		IDNumber:  "123456789",
		Password:  "secret123",
		Role:      "student",
	}
	_, err := f.userService.Register(context.Background(), dto)
	require.NoError(t, err)

	dto.Email = "other@test.local"
	_, err = f.userService.Register(context.Background(), dto)
	assert.ErrorIs(t, err, user.ErrIDNumberTaken)
}

func TestUserService_Update_SelfOrAdmin(t *testing.T) {
	f := newFixture(t)
	registered := registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)
	other := registeredUser(t, f, "avi@test.local", "secret123", user.RoleStudent)
	admin := registeredUser(t, f, "ruth@test.local", "secret123", user.RoleAdmin)

	dto := &user.UpdateDTO{
		FirstName: "דנה",
		LastName:  "לוי",
		Email:     "dana@test.local",
		IDNumber:  "987654321",
		Phone:     "052-7654321",
	}
	updated, err := f.userService.Update(ctxAs(registered), registered.ID(), dto)
	require.NoError(t, err)
	assert.Equal(t, "987654321", updated.IDNumber())
	assert.Equal(t, "052-7654321", updated.Phone())
	assert.Equal(t, "לוי", updated.LastName())

	_, err = f.userService.Update(ctxAs(other), registered.ID(), dto)
	assert.ErrorIs(t, err, composables.ErrForbidden)

	dto.Phone = "03-1234567"
	updated, err = f.userService.Update(ctxAs(admin), registered.ID(), dto)
	require.NoError(t, err)
	assert.Equal(t, "03-1234567", updated.Phone())
}

func TestUserService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	registered := registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)

	err := f.userService.ChangePassword(context.Background(), registered.ID(), "wrong", "newpass123")
	assert.ErrorIs(t, err, services.ErrInvalidPassword)

	require.NoError(t, f.userService.ChangePassword(context.Background(), registered.ID(), "secret123", "newpass123"))
	updated, err := f.users.GetByID(context.Background(), registered.ID())
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword("newpass123"))
	assert.False(t, updated.CheckPassword("secret123"))
}

func TestUserService_PasswordReset_SingleUse(t *testing.T) {
	f := newFixture(t)
	registered := registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)

	require.NoError(t, f.userService.RequestPasswordReset(context.Background(), "dana@test.local"))
	require.Len(t, f.resets.tokens, 1)
	var token string
	for tok := range f.resets.tokens {
		token = tok
	}

	require.NoError(t, f.userService.ResetPassword(context.Background(), token, "newpass123"))
	updated, err := f.users.GetByID(context.Background(), registered.ID())
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword("newpass123"))

	err = f.userService.ResetPassword(context.Background(), token, "again123")
	assert.ErrorIs(t, err, passwordreset.ErrNotFound, "a token never resets twice")
}

func TestUserService_RequestPasswordReset_InvalidatesPrior(t *testing.T) {
	f := newFixture(t)
	registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)

	require.NoError(t, f.userService.RequestPasswordReset(context.Background(), "dana@test.local"))
	require.NoError(t, f.userService.RequestPasswordReset(context.Background(), "dana@test.local"))
	assert.Len(t, f.resets.tokens, 1, "only the latest token survives")
}

func TestUserService_Delete_RemovesSessions(t *testing.T) {
	f := newFixture(t)
	registered := registeredUser(t, f, "dana@test.local", "secret123", user.RoleStudent)
	_, sess, err := f.authService.Login(context.Background(), "dana@test.local", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.userService.Delete(context.Background(), registered.ID()))
	_, err = f.users.GetByID(context.Background(), registered.ID())
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = f.sessions.GetByToken(context.Background(), sess.Token)
	assert.Error(t, err)
}
