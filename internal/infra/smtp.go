package infra

import (
	"fmt"
	"net/smtp"

	"supplyease/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends plain-text workflow notifications over SMTP.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	send     func(e *email.Email, addr string, a smtp.Auth) error
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SMTPUser
	if from == "" {
		from = "no-reply@supplyease.local"
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		send:     func(e *email.Email, addr string, a smtp.Auth) error { return e.Send(addr, a) },
	}
}

// Send delivers one message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := m.send(e, m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
