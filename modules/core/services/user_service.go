package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/passwordreset"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/session"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
)

const resetTokenTTL = time.Hour

type UserService struct {
	users     user.Repository
	sessions  session.Repository
	resets    passwordreset.Repository
	publisher eventbus.EventBus
}

func NewUserService(
	users user.Repository,
	sessions session.Repository,
	resets passwordreset.Repository,
	publisher eventbus.EventBus,
) *UserService {
	return &UserService{
		users:     users,
		sessions:  sessions,
		resets:    resets,
		publisher: publisher,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	return s.users.GetPaginated(ctx, params)
}

func (s *UserService) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	return s.users.Count(ctx, params)
}

// Register creates a new account. The email must not already be registered;
// the check and the insert share a transaction, with the unique index as the
// final arbiter under concurrency.
func (s *UserService) Register(ctx context.Context, dto *user.CreateDTO) (user.User, error) {
	entity, err := dto.ToEntity()
	if err != nil {
		return user.User{}, err
	}
	var created user.User
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByEmail(txCtx, dto.Email); err == nil {
			return user.ErrEmailTaken
		} else if !errors.Is(err, user.ErrNotFound) {
			return err
		}
		created, err = s.users.Create(txCtx, entity)
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	s.publisher.Publish(user.CreatedEvent{Result: created, Timestamp: time.Now()})
	return created, nil
}

// Update edits the profile. Users may edit their own; administrators may
// edit anyone.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, dto *user.UpdateDTO) (user.User, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return user.User{}, err
	}
	if actor.Role() != user.RoleAdmin && actor.ID() != id {
		return user.User{}, composables.ErrForbidden
	}
	var updated user.User
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.users.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated, err = s.users.Update(txCtx, dto.Apply(existing))
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	s.publisher.Publish(user.UpdatedEvent{Result: updated, Timestamp: time.Now()})
	return updated, nil
}

// ChangePassword verifies the current password before setting the new one.
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.users.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !existing.CheckPassword(oldPassword) {
			return ErrInvalidPassword
		}
		changed, err := existing.SetPassword(newPassword)
		if err != nil {
			return err
		}
		_, err = s.users.Update(txCtx, changed)
		return err
	})
}

// RequestPasswordReset issues a single-use token and announces it on the
// event bus so the mail subscriber can deliver the link. Any previous
// outstanding tokens for the user are invalidated.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := &passwordreset.Token{
		Token:     hex.EncodeToString(raw),
		UserID:    u.ID(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.resets.DeleteByUserID(txCtx, u.ID()); err != nil {
			return err
		}
		return s.resets.Create(txCtx, token)
	}); err != nil {
		return err
	}
	s.publisher.Publish(user.PasswordResetRequestedEvent{
		Result:    u,
		Token:     token.Token,
		Timestamp: time.Now(),
	})
	return nil
}

// ResetPassword consumes the token and sets the new password. Consuming and
// updating share a transaction, so a token can never be spent without the
// password actually changing.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		t, err := s.resets.GetByToken(txCtx, token)
		if err != nil {
			return err
		}
		if t.Expired() {
			_ = s.resets.Consume(txCtx, token)
			return passwordreset.ErrNotFound
		}
		u, err := s.users.GetByID(txCtx, t.UserID)
		if err != nil {
			return err
		}
		changed, err := u.SetPassword(newPassword)
		if err != nil {
			return err
		}
		if _, err := s.users.Update(txCtx, changed); err != nil {
			return err
		}
		return s.resets.Consume(txCtx, token)
	})
}

// Delete removes the user along with their sessions and reset tokens.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	var deleted user.User
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.users.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.sessions.DeleteByUserID(txCtx, id); err != nil {
			return err
		}
		if err := s.resets.DeleteByUserID(txCtx, id); err != nil {
			return err
		}
		deleted = existing
		return s.users.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(user.DeletedEvent{Result: deleted, Timestamp: time.Now()})
	return nil
}
