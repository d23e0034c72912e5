package persistence

import (
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/comment"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/notification"
	"github.com/iota-uz/campus-sdk/modules/requests/infrastructure/persistence/models"
)

func nullableUUID(id uuid.UUID) *string {
	if id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseNullableUUID(raw *string) (uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(*raw)
}

func toDBRequest(entity request.Request) models.Request {
	return models.Request{
		ID:               entity.ID().String(),
		RequesterID:      entity.RequesterID().String(),
		RequestType:      entity.RequestType(),
		Subject:          entity.Subject(),
		Description:      entity.Description(),
		AttachmentID:     nullableUUID(entity.AttachmentID()),
		Status:           string(entity.Status()),
		AssignedReviewer: nullableUUID(entity.AssignedReviewer()),
		Feedback:         entity.Feedback(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func toDomainRequest(dbRow models.Request) (request.Request, error) {
	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return request.Request{}, err
	}
	requesterID, err := uuid.Parse(dbRow.RequesterID)
	if err != nil {
		return request.Request{}, err
	}
	attachmentID, err := parseNullableUUID(dbRow.AttachmentID)
	if err != nil {
		return request.Request{}, err
	}
	reviewerID, err := parseNullableUUID(dbRow.AssignedReviewer)
	if err != nil {
		return request.Request{}, err
	}
	status, err := request.ParseStatus(dbRow.Status)
	if err != nil {
		return request.Request{}, err
	}
	return request.Hydrate(
		id,
		requesterID,
		dbRow.RequestType,
		dbRow.Subject,
		dbRow.Description,
		attachmentID,
		status,
		reviewerID,
		dbRow.Feedback,
		dbRow.CreatedAt,
		dbRow.UpdatedAt,
	), nil
}

func toDBComment(entity *comment.Comment) models.Comment {
	return models.Comment{
		ID:        entity.ID.String(),
		RequestID: entity.RequestID.String(),
		AuthorID:  entity.AuthorID.String(),
		Content:   entity.Content,
		IsRead:    entity.IsRead,
		CreatedAt: entity.CreatedAt,
	}
}

func toDomainComment(dbRow models.Comment) (*comment.Comment, error) {
	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return nil, err
	}
	requestID, err := uuid.Parse(dbRow.RequestID)
	if err != nil {
		return nil, err
	}
	authorID, err := uuid.Parse(dbRow.AuthorID)
	if err != nil {
		return nil, err
	}
	return &comment.Comment{
		ID:        id,
		RequestID: requestID,
		AuthorID:  authorID,
		Content:   dbRow.Content,
		IsRead:    dbRow.IsRead,
		CreatedAt: dbRow.CreatedAt,
	}, nil
}

func toDBNotification(entity *notification.Notification) models.Notification {
	return models.Notification{
		ID:          entity.ID.String(),
		RecipientID: entity.RecipientID.String(),
		Message:     entity.Message,
		IsRead:      entity.IsRead,
		CreatedAt:   entity.CreatedAt,
	}
}

func toDomainNotification(dbRow models.Notification) (*notification.Notification, error) {
	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return nil, err
	}
	recipientID, err := uuid.Parse(dbRow.RecipientID)
	if err != nil {
		return nil, err
	}
	return &notification.Notification{
		ID:          id,
		RecipientID: recipientID,
		Message:     dbRow.Message,
		IsRead:      dbRow.IsRead,
		CreatedAt:   dbRow.CreatedAt,
	}, nil
}
