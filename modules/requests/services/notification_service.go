package services

import (
	"context"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/notification"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
)

// NotificationService exposes the outbox to its recipient only; every
// operation is implicitly scoped to the acting user.
type NotificationService struct {
	notifications notification.Repository
	publisher     eventbus.EventBus
}

func NewNotificationService(notifications notification.Repository, publisher eventbus.EventBus) *NotificationService {
	return &NotificationService{notifications: notifications, publisher: publisher}
}

func (s *NotificationService) ListUnread(ctx context.Context) ([]*notification.Notification, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.notifications.ListUnread(ctx, actor.ID())
}

// MarkAllRead is idempotent: a second call finds nothing unread and
// reports zero, not an error.
func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		count, err = s.notifications.MarkAllRead(txCtx, actor.ID())
		return err
	})
	return count, err
}
