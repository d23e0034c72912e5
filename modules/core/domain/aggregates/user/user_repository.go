package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var (
	ErrNotFound      = serrors.NewError("USER_NOT_FOUND", "משתמש לא נמצא")
	ErrEmailTaken    = serrors.NewError("EMAIL_TAKEN", "כתובת האימייל כבר רשומה במערכת")
	ErrIDNumberTaken = serrors.NewError("ID_NUMBER_TAKEN", "תעודת הזהות כבר רשומה במערכת")
)

type FindParams struct {
	Role       Role
	Department string
	Limit      int
	Offset     int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]User, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
