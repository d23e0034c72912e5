package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewError("SESSION_NOT_FOUND", "הפעלה לא נמצאה")

type Session struct {
	Token     string
	UserID    uuid.UUID
	IP        string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}

type CreateDTO struct {
	Token     string
	UserID    uuid.UUID
	IP        string
	UserAgent string
	ExpiresAt time.Time
}

func (d *CreateDTO) ToEntity() *Session {
	return &Session{
		Token:     d.Token,
		UserID:    d.UserID,
		IP:        d.IP,
		UserAgent: d.UserAgent,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: time.Now(),
	}
}

type Repository interface {
	GetByToken(ctx context.Context, token string) (*Session, error)
	Create(ctx context.Context, s *Session) error
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type CreatedEvent struct {
	Result    Session
	Timestamp time.Time
}
