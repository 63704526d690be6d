package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"riverpatch-inquiry-backend/internal/domain"
	"riverpatch-inquiry-backend/pkg/email"
)

type inquiryUsecase struct {
	renderer    *InquiryRenderer
	sender      email.Sender
	sendTimeout time.Duration
	now         func() time.Time
	log         *slog.Logger
}

// NewInquiryUsecase creates a new inquiry usecase. Every submission gets exactly one
// send attempt bounded by sendTimeout.
func NewInquiryUsecase(renderer *InquiryRenderer, sender email.Sender, sendTimeout time.Duration, log *slog.Logger) domain.InquiryUsecase {
	return &inquiryUsecase{
		renderer:    renderer,
		sender:      sender,
		sendTimeout: sendTimeout,
		now:         time.Now,
		log:         log,
	}
}

// SubmitInquiry validates the inquiry, renders it and sends it to the studio mailbox
func (uc *inquiryUsecase) SubmitInquiry(ctx context.Context, req *domain.InquiryRequest) (*domain.SubmitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	notification, err := uc.renderer.Render(req, uc.now())
	if err != nil {
		return nil, &domain.SendError{Err: fmt.Errorf("render: %w", err)}
	}

	// The submitter hanging up does not abort the send; only the timeout does.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.sendTimeout)
	defer cancel()

	uc.log.InfoContext(ctx, "Attempting to send email", "to", notification.To, "subject", notification.Subject)

	messageID, err := uc.sender.Send(sendCtx, toMessage(notification))
	if err != nil {
		if errors.Is(sendCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("send timed out after %s: %w", uc.sendTimeout, err)
		}
		uc.log.ErrorContext(ctx, "Email send failed", "error", err)
		return nil, &domain.SendError{Err: err}
	}

	uc.log.InfoContext(ctx, "Email sent successfully", "message_id", messageID)
	return &domain.SubmitResult{MessageID: messageID}, nil
}

func toMessage(n *domain.OutboundNotification) *email.Message {
	return &email.Message{
		FromName: n.FromName,
		From:     n.From,
		To:       n.To,
		ReplyTo:  n.ReplyTo,
		Subject:  n.Subject,
		Text:     n.Text,
		HTML:     n.HTML,
	}
}
