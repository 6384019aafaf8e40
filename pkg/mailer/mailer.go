package mailer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/noah-isme/coaching-center-api/pkg/config"
)

// ErrNotConfigured is returned by the disabled sender.
var ErrNotConfigured = errors.New("smtp is not configured")

// Message is an outbound HTML email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers mail through an SMTP relay. Port 465 uses implicit TLS,
// other ports upgrade with STARTTLS when offered.
type SMTPSender struct {
	dialer dialer
	from   string
}

// New returns an SMTP sender, or a sender that always fails with
// ErrNotConfigured when host or user are missing.
func New(cfg config.SMTPConfig) Sender {
	if !cfg.Configured() {
		return disabledSender{}
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.Port == 465
	return &SMTPSender{dialer: d, from: cfg.From}
}

// Send delivers msg unless ctx is already done.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send %q: %w", msg.Subject, err)
	}
	return nil
}

type disabledSender struct{}

func (disabledSender) Send(context.Context, Message) error {
	return ErrNotConfigured
}
