package user

import "time"

type CreatedEvent struct {
	Result    User
	Timestamp time.Time
}

type UpdatedEvent struct {
	Result    User
	Timestamp time.Time
}

type DeletedEvent struct {
	Result    User
	Timestamp time.Time
}

// PasswordResetRequestedEvent carries the single-use token issued for the
// user so a mail subscriber can deliver the reset link.
type PasswordResetRequestedEvent struct {
	Result    User
	Token     string
	Timestamp time.Time
}
