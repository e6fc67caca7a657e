// Package mail wraps the SMTP transport used for alert notification emails.
package mail

import (
	"context"
	"crypto/tls"

	gomail "github.com/go-mail/mail"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// SkipTLSVerify is only meant for local development against a fake SMTP server.
	SkipTLSVerify bool
}

// ISender is the outbound email contract used by the notification dispatcher.
type ISender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sender struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a new SMTP sender.
func New(cfg Config) (ISender, error) {
	if cfg.Host == "" {
		return nil, ErrHostRequired
	}
	if cfg.From == "" {
		return nil, ErrFromRequired
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.SkipTLSVerify {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &sender{dialer: d, from: cfg.From}, nil
}

func (s *sender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	// gomail has no context support; honour cancellation before the dial.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return s.dialer.DialAndSend(m)
}
