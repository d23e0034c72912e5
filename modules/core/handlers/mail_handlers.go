package handlers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
	"github.com/iota-uz/campus-sdk/pkg/mailer"
)

// MailHandlers delivers account mail off the event bus. Delivery failures
// are logged and swallowed; mail never fails the action that triggered it.
type MailHandlers struct {
	dispatcher mailer.Dispatcher
	log        *logrus.Logger
}

func RegisterMailHandlers(bus eventbus.EventBus, dispatcher mailer.Dispatcher, log *logrus.Logger) *MailHandlers {
	h := &MailHandlers{dispatcher: dispatcher, log: log}
	bus.Subscribe(h.onUserCreated)
	bus.Subscribe(h.onPasswordResetRequested)
	return h
}

func (h *MailHandlers) onUserCreated(event user.CreatedEvent) {
	u := event.Result
	body := fmt.Sprintf("שלום %s,\n\nההרשמה שלך הושלמה בהצלחה.", u.FullName())
	if err := h.dispatcher.Send(context.Background(), u.Email(), "הרשמה בוצעה בהצלחה", body); err != nil {
		h.log.WithError(err).WithField("email", u.Email()).Error("failed to send welcome mail")
	}
}

func (h *MailHandlers) onPasswordResetRequested(event user.PasswordResetRequestedEvent) {
	u := event.Result
	conf := configuration.Use()
	link := fmt.Sprintf("%s/reset-password?token=%s", conf.FrontendOrigin, event.Token)
	body := fmt.Sprintf("שלום %s,\n\nלאיפוס הסיסמה שלך, יש ללחוץ על הקישור הבא:\n%s\n\nהקישור תקף לשעה אחת.", u.FullName(), link)
	if err := h.dispatcher.Send(context.Background(), u.Email(), "איפוס סיסמה", body); err != nil {
		h.log.WithError(err).WithField("email", u.Email()).Error("failed to send reset mail")
	}
}
