package mail

import (
	"context"
	"fmt"

	sendgrid "github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/ez2source-sys/ez2source-sub001/internal/config"
)

type sendgridTransport struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridTransport builds a transport backed by the SendGrid v3 API.
func NewSendGridTransport(cfg config.MailConfig) Transport {
	return &sendgridTransport{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (t *sendgridTransport) Deliver(ctx context.Context, to, subject, htmlBody, textBody string) error {
	from := sgmail.NewEmail(t.fromName, t.fromEmail)
	recipient := sgmail.NewEmail("", to)
	message := sgmail.NewSingleEmail(from, subject, recipient, textBody, htmlBody)

	resp, err := t.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

// NewTransport selects the configured transport implementation.
func NewTransport(cfg config.MailConfig) Transport {
	if cfg.Provider == "sendgrid" {
		return NewSendGridTransport(cfg)
	}
	return NewSMTPTransport(cfg)
}
