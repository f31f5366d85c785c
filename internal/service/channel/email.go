package channel

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v3"

	"alerting-platform/internal/config"
	"alerting-platform/internal/domain"
)

// EmailTransport hands alerts off to Resend.
type EmailTransport struct {
	client    *resend.Client
	fromEmail string
}

func NewEmailTransport(cfg *config.Config) *EmailTransport {
	return &EmailTransport{
		client:    resend.NewClient(cfg.ResendAPIKey),
		fromEmail: cfg.FromEmail,
	}
}

func (t *EmailTransport) Send(ctx context.Context, alert *domain.Alert, user *domain.User) error {
	if user.Email == "" {
		return fmt.Errorf("user %s has no email address", user.ID)
	}

	subject := fmt.Sprintf("[%s] %s", strings.ToUpper(string(alert.Severity)), alert.Title)
	body := fmt.Sprintf(
		"<h2>%s</h2><p>%s</p><p><em>Severity: %s</em></p>",
		html.EscapeString(alert.Title),
		html.EscapeString(alert.Message),
		alert.Severity,
	)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Alerting Platform <%s>", t.fromEmail),
		To:      []string{user.Email},
		Subject: subject,
		Html:    body,
	}

	_, err := t.client.Emails.Send(params)
	return err
}
