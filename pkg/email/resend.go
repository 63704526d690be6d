package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/resend/resend-go/v3"
)

// ResendSender implements Sender using the Resend HTTP API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend sender. httpClient may be nil.
func NewResendSender(apiKey string, httpClient *http.Client) *ResendSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ResendSender{
		client: resend.NewCustomClient(httpClient, apiKey),
	}
}

// Send implements Sender. The returned id is the one assigned by Resend.
func (s *ResendSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	req := &resend.SendEmailRequest{
		From:    msg.FromHeader(),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}
	return sent.Id, nil
}
