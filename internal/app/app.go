// Package app wires config into the HTTP handler. Shared by the long-running
// server and the serverless entrypoint.
package app

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"riverpatch-inquiry-backend/config"
	_ "riverpatch-inquiry-backend/docs" // registers the swagger spec
	v1 "riverpatch-inquiry-backend/internal/delivery/http/v1"
	"riverpatch-inquiry-backend/internal/usecase"
	"riverpatch-inquiry-backend/pkg/email"
	"riverpatch-inquiry-backend/pkg/security"
	"riverpatch-inquiry-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// New builds the router and everything behind it
func New(cfg *config.Config, log *slog.Logger, secLog *security.SecurityLogger) (http.Handler, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.UseJSONNames(v)
	}

	sender, err := NewSender(cfg)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.MailTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load mail timezone: %w", err)
	}

	renderer, err := usecase.NewInquiryRenderer(usecase.RendererConfig{
		FromName: cfg.MailFromName,
		From:     cfg.MailFrom,
		To:       cfg.ContactEmailTo,
		Location: loc,
		Brand: usecase.Branding{
			Name:         cfg.BrandName,
			Tagline:      cfg.BrandTagline,
			ContactEmail: cfg.BrandContactEmail,
		},
	})
	if err != nil {
		return nil, err
	}

	inquiryUC := usecase.NewInquiryUsecase(renderer, sender, cfg.SendTimeout, log)
	healthUC := usecase.NewHealthUsecase()

	return v1.NewRouter(v1.RouterDeps{
		InquiryUC:      inquiryUC,
		HealthUC:       healthUC,
		SecurityLogger: secLog,
		Log:            log,
		Config:         cfg,
	}), nil
}

// NewSender picks the mail transport named by MAIL_PROVIDER
func NewSender(cfg *config.Config) (email.Sender, error) {
	switch cfg.MailProvider {
	case config.ProviderSMTP:
		return email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
		}), nil
	case config.ProviderResend:
		// The usecase deadline bounds each send; the client timeout is a backstop.
		client := &http.Client{
			Timeout: cfg.SendTimeout + time.Second,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
		return email.NewResendSender(cfg.ResendAPIKey, client), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}
