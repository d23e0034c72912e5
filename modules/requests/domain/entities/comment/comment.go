package comment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var (
	ErrNotFound     = serrors.NewError("COMMENT_NOT_FOUND", "תגובה לא נמצאה")
	ErrEmptyContent = serrors.NewError("EMPTY_CONTENT", "נדרש תוכן לתגובה")
)

// Comment is immutable once created; only IsRead flips, monotonically
// false to true.
type Comment struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

func New(requestID, authorID uuid.UUID, content string) (*Comment, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	return &Comment{
		ID:        uuid.New(),
		RequestID: requestID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

type Repository interface {
	// ListByRequest returns the full thread in creation-time ascending
	// order.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*Comment, error)
	Create(ctx context.Context, c *Comment) (*Comment, error)
	// MarkAllRead flips every comment on the request to read. Returns the
	// number of rows changed; zero is a success, not an error.
	MarkAllRead(ctx context.Context, requestID uuid.UUID) (int64, error)
}
