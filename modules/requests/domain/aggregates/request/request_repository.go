package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewError("REQUEST_NOT_FOUND", "בקשה לא נמצאה")

type FindParams struct {
	RequesterID        uuid.UUID
	AssignedReviewerID uuid.UUID
	Department         string
	Status             Status
	Limit              int
	Offset             int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Request, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Request, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, r Request) (Request, error)
	Update(ctx context.Context, r Request) (Request, error)
}
