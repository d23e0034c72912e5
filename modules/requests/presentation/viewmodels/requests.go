package viewmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/comment"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/notification"
)

type Request struct {
	ID               string    `json:"id"`
	RequesterID      string    `json:"requester_id"`
	RequestType      string    `json:"request_type"`
	Subject          string    `json:"subject"`
	Description      string    `json:"description"`
	AttachmentID     string    `json:"attachment_id,omitempty"`
	Status           string    `json:"status"`
	StatusDisplay    string    `json:"status_display"`
	AssignedReviewer string    `json:"assigned_reviewer_id,omitempty"`
	Feedback         string    `json:"feedback,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func optionalID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func RequestFromEntity(entity request.Request) Request {
	return Request{
		ID:               entity.ID().String(),
		RequesterID:      entity.RequesterID().String(),
		RequestType:      entity.RequestType(),
		Subject:          entity.Subject(),
		Description:      entity.Description(),
		AttachmentID:     optionalID(entity.AttachmentID()),
		Status:           string(entity.Status()),
		StatusDisplay:    entity.Status().Display(),
		AssignedReviewer: optionalID(entity.AssignedReviewer()),
		Feedback:         entity.Feedback(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func RequestsFromEntities(entities []request.Request) []Request {
	out := make([]Request, 0, len(entities))
	for _, e := range entities {
		out = append(out, RequestFromEntity(e))
	}
	return out
}

type Comment struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func CommentFromEntity(entity *comment.Comment) Comment {
	return Comment{
		ID:        entity.ID.String(),
		RequestID: entity.RequestID.String(),
		AuthorID:  entity.AuthorID.String(),
		Content:   entity.Content,
		IsRead:    entity.IsRead,
		CreatedAt: entity.CreatedAt,
	}
}

func CommentsFromEntities(entities []*comment.Comment) []Comment {
	out := make([]Comment, 0, len(entities))
	for _, e := range entities {
		out = append(out, CommentFromEntity(e))
	}
	return out
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NotificationFromEntity(entity *notification.Notification) Notification {
	return Notification{
		ID:        entity.ID.String(),
		Message:   entity.Message,
		IsRead:    entity.IsRead,
		CreatedAt: entity.CreatedAt,
	}
}

func NotificationsFromEntities(entities []*notification.Notification) []Notification {
	out := make([]Notification, 0, len(entities))
	for _, e := range entities {
		out = append(out, NotificationFromEntity(e))
	}
	return out
}
