package passwordreset

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewError("RESET_TOKEN_NOT_FOUND", "אסימון איפוס לא תקין או שפג תוקפו")

// Token is a single-use password reset credential. Consuming it deletes
// the row, so a token can never reset a password twice.
type Token struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *Token) Expired() bool {
	return t.ExpiresAt.Before(time.Now())
}

type Repository interface {
	GetByToken(ctx context.Context, token string) (*Token, error)
	Create(ctx context.Context, t *Token) error
	// Consume deletes the token, returning ErrNotFound when it was
	// already used or never existed.
	Consume(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
