package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification is append-only: created by the lifecycle engine as a side
// effect of a status change or comment post, never directly by a caller.
type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}

func New(recipientID uuid.UUID, message string) *Notification {
	return &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Message:     message,
		CreatedAt:   time.Now(),
	}
}

type Repository interface {
	// ListUnread returns unread notifications for the recipient, newest
	// first.
	ListUnread(ctx context.Context, recipientID uuid.UUID) ([]*Notification, error)
	Create(ctx context.Context, n *Notification) (*Notification, error)
	// MarkAllRead flips every unread notification of the recipient to
	// read. Returns the number of rows changed; zero is a success.
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}
