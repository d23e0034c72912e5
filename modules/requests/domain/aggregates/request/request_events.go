package request

import (
	"time"

	"github.com/google/uuid"
)

type CreatedEvent struct {
	Result    Request
	Timestamp time.Time
}

// StatusUpdatedEvent fires after the new status and its notification have
// been committed.
type StatusUpdatedEvent struct {
	Result    Request
	Previous  Status
	Timestamp time.Time
}

// CommentPostedEvent fires after a comment and its notification (if any)
// have been committed. Recipient is nil-UUID when no counterpart existed.
type CommentPostedEvent struct {
	Result    Request
	CommentID uuid.UUID
	AuthorID  uuid.UUID
	Recipient uuid.UUID
	Timestamp time.Time
}
