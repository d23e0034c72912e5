package models

import "time"

type Request struct {
	ID               string
	RequesterID      string
	RequestType      string
	Subject          string
	Description      string
	AttachmentID     *string
	Status           string
	AssignedReviewer *string
	Feedback         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Comment struct {
	ID        string
	RequestID string
	AuthorID  string
	Content   string
	IsRead    bool
	CreatedAt time.Time
}

type Notification struct {
	ID          string
	RecipientID string
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}
