package mail

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/ez2source-sys/ez2source-sub001/internal/config"
)

type smtpTransport struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

// NewSMTPTransport builds a transport that dials the configured SMTP
// server for each delivery.
func NewSMTPTransport(cfg config.MailConfig) Transport {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	}
	return &smtpTransport{
		dialer:    d,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (t *smtpTransport) Deliver(ctx context.Context, to, subject, htmlBody, textBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", t.fromEmail, t.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := t.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}
