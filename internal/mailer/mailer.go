package mailer

import (
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Mailer delivers plain-text mail. Delivery is best effort everywhere in
// the app: callers log failures and move on, a failed send never rolls
// back the state change it was attached to.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTP sends through a real gateway via gomail.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, user, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *SMTP) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// Disabled logs instead of sending. Used when EMAIL_ENABLED is off.
type Disabled struct{}

func (Disabled) Send(to, subject, body string) error {
	slog.Info("email delivery disabled, dropping message", "to", to, "subject", subject)
	return nil
}
