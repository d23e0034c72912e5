package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/comment"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/notification"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
)

const newCommentMessage = `התקבלה תגובה חדשה לבקשה "%s"`

type CommentService struct {
	comments      comment.Repository
	requests      request.Repository
	notifications notification.Repository
	publisher     eventbus.EventBus
}

func NewCommentService(
	comments comment.Repository,
	requests request.Repository,
	notifications notification.Repository,
	publisher eventbus.EventBus,
) *CommentService {
	return &CommentService{
		comments:      comments,
		requests:      requests,
		notifications: notifications,
		publisher:     publisher,
	}
}

// canComment is evaluated against the current assignment at call time:
// reassignment revokes the prior reviewer's comment rights going forward.
func canComment(actor user.User, entity request.Request) bool {
	if actor.Role().IsAdmin() {
		return true
	}
	return entity.IsParticipant(actor.ID())
}

// Post appends an immutable comment and notifies the other side of the
// conversation in the same transaction. When the author sits on the
// requester side and no reviewer is assigned, no notification is created
// and that is not an error.
func (s *CommentService) Post(ctx context.Context, requestID uuid.UUID, content string) (*comment.Comment, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, comment.ErrEmptyContent
	}

	var created *comment.Comment
	var parent request.Request
	recipient := uuid.Nil
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.requests.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if !canComment(actor, existing) {
			return composables.ErrForbidden
		}
		parent = existing

		entity, err := comment.New(requestID, actor.ID(), content)
		if err != nil {
			return err
		}
		created, err = s.comments.Create(txCtx, entity)
		if err != nil {
			return err
		}

		other, ok := existing.OtherParty(actor.ID())
		if !ok || other == actor.ID() {
			return nil
		}
		recipient = other
		message := fmt.Sprintf(newCommentMessage, existing.RequestType())
		_, err = s.notifications.Create(txCtx, notification.New(other, message))
		return err
	}); err != nil {
		return nil, err
	}
	s.publisher.Publish(request.CommentPostedEvent{
		Result:    parent,
		CommentID: created.ID,
		AuthorID:  actor.ID(),
		Recipient: recipient,
		Timestamp: time.Now(),
	})
	return created, nil
}

// List returns the full ordered thread.
func (s *CommentService) List(ctx context.Context, requestID uuid.UUID) ([]*comment.Comment, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return nil, err
	}
	entity, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !canComment(actor, entity) {
		return nil, composables.ErrForbidden
	}
	return s.comments.ListByRequest(ctx, requestID)
}

// MarkRead flips the whole thread to read. Deliberately not scoped to the
// caller's counterpart entries: any authorized participant marks the full
// thread, and re-invoking on an already-read thread is a no-op success.
func (s *CommentService) MarkRead(ctx context.Context, requestID uuid.UUID) (int64, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return 0, err
	}
	entity, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return 0, err
	}
	if !canComment(actor, entity) {
		return 0, composables.ErrForbidden
	}
	var count int64
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		count, err = s.comments.MarkAllRead(txCtx, requestID)
		return err
	})
	return count, err
}
