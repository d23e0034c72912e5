package upload

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var ErrNotFound = serrors.NewError("UPLOAD_NOT_FOUND", "קובץ לא נמצא")

type Upload struct {
	ID         uuid.UUID
	Hash       string
	Path       string
	Name       string
	Size       int
	Mimetype   string
	UploaderID uuid.UUID
	CreatedAt  time.Time
}

func (u *Upload) URL(base string) string {
	return base + "/" + u.Path
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Upload, error)
	GetByHash(ctx context.Context, hash string) (*Upload, error)
	Create(ctx context.Context, u *Upload) (*Upload, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatedEvent struct {
	Result    Upload
	Timestamp time.Time
}
