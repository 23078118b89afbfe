package mailer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/resend/resend-go/v2"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
)

// ResendMailer sends email through the Resend API
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer creates a mailer for apiKey
func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

// WithBaseURL points the client at another API host
func (m *ResendMailer) WithBaseURL(raw string) (*ResendMailer, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	m.client.BaseURL = u
	return m, nil
}

// Ensure it implements the interface
var _ ports.Mailer = (*ResendMailer)(nil)

// Send delivers the email and returns the provider message id
func (m *ResendMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}
	for _, a := range email.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}
