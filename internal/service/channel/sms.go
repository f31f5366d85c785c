package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"alerting-platform/internal/config"
	"alerting-platform/internal/domain"
)

// SMSTransport hands alerts off to an HTTP SMS gateway.
type SMSTransport struct {
	client   *resty.Client
	url      string
	username string
	apiKey   string
}

func NewSMSTransport(cfg *config.Config) *SMSTransport {
	client := resty.New().
		SetTimeout(10 * time.Second)

	return &SMSTransport{
		client:   client,
		url:      cfg.SMSProviderURL,
		username: cfg.SMSProviderUsername,
		apiKey:   cfg.SMSProviderAPIKey,
	}
}

func (t *SMSTransport) Send(ctx context.Context, alert *domain.Alert, user *domain.User) error {
	if user.Phone == nil || *user.Phone == "" {
		return fmt.Errorf("user %s has no phone number", user.ID)
	}
	if t.url == "" {
		return fmt.Errorf("sms provider is not configured")
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"u": t.username,
			"p": t.apiKey,
			"m": *user.Phone,
			"c": fmt.Sprintf("[%s] %s: %s", alert.Severity, alert.Title, alert.Message),
		}).
		Get(t.url)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("sms send failed: %s", resp.Status())
	}
	return nil
}
