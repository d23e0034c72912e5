package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/pkg/configuration"
)

// Dispatcher sends outbound mail. Callers must treat failures as
// non-fatal: a dispatch error never aborts the action that triggered it.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}

// FromConfig picks the SMTP dispatcher when an SMTP host is configured and
// the log dispatcher otherwise (development, tests).
func FromConfig(conf *configuration.Configuration, log *logrus.Logger) Dispatcher {
	if conf.Mail.Enabled() {
		return NewSMTPDispatcher(conf.Mail, log)
	}
	return NewLogDispatcher(log)
}

type SMTPDispatcher struct {
	opts configuration.MailOptions
	log  *logrus.Logger
}

func NewSMTPDispatcher(opts configuration.MailOptions, log *logrus.Logger) *SMTPDispatcher {
	return &SMTPDispatcher{opts: opts, log: log}
}

func (d *SMTPDispatcher) Send(_ context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", d.opts.Host, d.opts.Port)
	msg := strings.Join([]string{
		"From: " + d.opts.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if d.opts.Username != "" {
		auth = smtp.PlainAuth("", d.opts.Username, d.opts.Password, d.opts.Host)
	}
	if err := smtp.SendMail(addr, auth, d.opts.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	d.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail dispatched")
	return nil
}

// LogDispatcher writes the message to the log instead of sending it.
type LogDispatcher struct {
	log *logrus.Logger
}

func NewLogDispatcher(log *logrus.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Send(_ context.Context, to, subject, body string) error {
	d.log.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"body":    body,
	}).Info("mail dispatch (log only)")
	return nil
}
