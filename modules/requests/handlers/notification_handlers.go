package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
	"github.com/iota-uz/campus-sdk/pkg/mailer"
)

// NotificationHandlers mirrors in-app notifications to email. Dispatch runs
// after the transaction committed; a failure here is logged and swallowed,
// never surfaced to the action that triggered it.
type NotificationHandlers struct {
	pool       *pgxpool.Pool
	users      user.Repository
	dispatcher mailer.Dispatcher
	log        *logrus.Logger
}

func RegisterNotificationHandlers(
	bus eventbus.EventBus,
	pool *pgxpool.Pool,
	users user.Repository,
	dispatcher mailer.Dispatcher,
	log *logrus.Logger,
) *NotificationHandlers {
	h := &NotificationHandlers{pool: pool, users: users, dispatcher: dispatcher, log: log}
	bus.Subscribe(h.onStatusUpdated)
	bus.Subscribe(h.onCommentPosted)
	return h
}

func (h *NotificationHandlers) send(recipientID uuid.UUID, subject, body string) {
	ctx := context.Background()
	if h.pool != nil {
		ctx = composables.WithPool(ctx, h.pool)
	}
	recipient, err := h.users.GetByID(ctx, recipientID)
	if err != nil {
		h.log.WithError(err).WithField("recipient_id", recipientID).Error("failed to resolve mail recipient")
		return
	}
	if err := h.dispatcher.Send(ctx, recipient.Email(), subject, body); err != nil {
		h.log.WithError(err).WithField("email", recipient.Email()).Error("failed to dispatch notification mail")
	}
}

func (h *NotificationHandlers) onStatusUpdated(event request.StatusUpdatedEvent) {
	r := event.Result
	body := fmt.Sprintf(`הבקשה שלך "%s" עודכנה לסטטוס: %s`, r.RequestType(), r.Status().Display())
	h.send(r.RequesterID(), "עדכון סטטוס בקשה", body)
}

func (h *NotificationHandlers) onCommentPosted(event request.CommentPostedEvent) {
	if event.Recipient == uuid.Nil {
		return
	}
	body := fmt.Sprintf(`התקבלה תגובה חדשה לבקשה "%s"`, event.Result.RequestType())
	h.send(event.Recipient, "תגובה חדשה לבקשה", body)
}
