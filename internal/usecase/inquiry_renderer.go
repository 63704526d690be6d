package usecase

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"riverpatch-inquiry-backend/internal/domain"
)

// TimestampLayout matches en-US locale formatting, e.g. "10/17/2026, 3:04:05 PM"
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Branding is the studio identity printed in subjects and templates
type Branding struct {
	Name         string
	Tagline      string
	ContactEmail string
}

// RendererConfig holds the fixed envelope and presentation settings
type RendererConfig struct {
	FromName string
	From     string
	To       string
	Location *time.Location
	Brand    Branding
}

// InquiryRenderer turns an inquiry into subject, text and HTML bodies.
// It holds no mutable state and is safe for concurrent use.
type InquiryRenderer struct {
	cfg  RendererConfig
	html *htmltemplate.Template
	text *texttemplate.Template
}

type inquiryView struct {
	Timestamp string
	FirstName string
	LastName  string
	Email     string
	Company   string
	Budget    string
	Message   string
	Brand     Branding
}

// NewInquiryRenderer parses the templates once
func NewInquiryRenderer(cfg RendererConfig) (*InquiryRenderer, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	html, err := htmltemplate.New("inquiry.html").
		Funcs(htmltemplate.FuncMap{"nl2br": nl2br}).
		Parse(inquiryHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template: %w", err)
	}

	text, err := texttemplate.New("inquiry.txt").Parse(inquiryTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}

	return &InquiryRenderer{cfg: cfg, html: html, text: text}, nil
}

// Subject builds "New Project Inquiry from {first} {last} - {brand}"
func (r *InquiryRenderer) Subject(req *domain.InquiryRequest) string {
	return fmt.Sprintf("New Project Inquiry from %s %s - %s", req.FirstName, req.LastName, r.cfg.Brand.Name)
}

// Render builds the notification for req as received at now
func (r *InquiryRenderer) Render(req *domain.InquiryRequest, now time.Time) (*domain.OutboundNotification, error) {
	view := inquiryView{
		Timestamp: now.In(r.cfg.Location).Format(TimestampLayout),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.CompanyOrPlaceholder(),
		Budget:    req.BudgetOrPlaceholder(),
		Message:   req.Message,
		Brand:     r.cfg.Brand,
	}

	var text bytes.Buffer
	if err := r.text.Execute(&text, view); err != nil {
		return nil, fmt.Errorf("failed to execute text template: %w", err)
	}

	var html bytes.Buffer
	if err := r.html.Execute(&html, view); err != nil {
		return nil, fmt.Errorf("failed to execute html template: %w", err)
	}

	return &domain.OutboundNotification{
		FromName: r.cfg.FromName,
		From:     r.cfg.From,
		ReplyTo:  req.Email,
		To:       r.cfg.To,
		Subject:  r.Subject(req),
		Text:     text.String(),
		HTML:     html.String(),
	}, nil
}

// nl2br escapes each line of s and joins them with <br />
func nl2br(s string) htmltemplate.HTML {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = htmltemplate.HTMLEscapeString(line)
	}
	return htmltemplate.HTML(strings.Join(lines, "<br />"))
}

const inquiryTextTemplate = `Date and Time: {{.Timestamp}}
Name: {{.FirstName}} {{.LastName}}
Email: {{.Email}}
Current Website: {{.Company}}
Budget: {{.Budget}}
Message: {{.Message}}

Sent from {{.Brand.Name}}{{if .Brand.ContactEmail}} | {{.Brand.ContactEmail}}{{end}}
`

const inquiryHTMLTemplate = `<div style="font-family: Arial, sans-serif; max-width: 650px; margin: 20px auto; background: linear-gradient(135deg, #001140, #261e67); border-radius: 15px; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.2); overflow: hidden;">
  <div style="background-color: #261e67; padding: 20px; text-align: center; border-bottom: 4px solid #c0bcf5;">
    <h1 style="color: #defafe; font-size: 28px; margin: 0; font-weight: 600; letter-spacing: 1px;">{{.Brand.Name}}</h1>
    {{- if .Brand.Tagline}}
    <p style="color: #c0bcf5; font-size: 16px; margin: 8px 0 0; font-weight: 300;">{{.Brand.Tagline}}</p>
    {{- end}}
  </div>
  <div style="padding: 30px; background-color: #e6f2f9; color: #6f7d7f;">
    <h2 style="color: #261e67; font-size: 22px; margin: 0 0 20px; font-weight: 500; border-bottom: 2px solid #ef476f; padding-bottom: 5px; display: inline-block;">New Project Inquiry</h2>
    <table style="width: 100%; border-spacing: 0 10px;">
      <tr>
        <td style="font-weight: 600; color: #261e67; width: 120px; padding: 8px 0;">Date &amp; Time:</td>
        <td style="color: #6f7d7f; padding: 8px 0;">{{.Timestamp}}</td>
      </tr>
      <tr>
        <td style="font-weight: 600; color: #261e67; width: 120px; padding: 8px 0;">Name:</td>
        <td style="color: #6f7d7f; padding: 8px 0;">{{.FirstName}} {{.LastName}}</td>
      </tr>
      <tr>
        <td style="font-weight: 600; color: #261e67; padding: 8px 0;">Email:</td>
        <td style="padding: 8px 0;">
          <a href="mailto:{{.Email}}" style="color: #ef476f; text-decoration: none; font-weight: 500;">{{.Email}}</a>
        </td>
      </tr>
      <tr>
        <td style="font-weight: 600; color: #261e67; padding: 8px 0;">Website:</td>
        <td style="color: #6f7d7f; padding: 8px 0;">{{.Company}}</td>
      </tr>
      <tr>
        <td style="font-weight: 600; color: #261e67; padding: 8px 0;">Budget:</td>
        <td style="color: #6f7d7f; padding: 8px 0;">{{.Budget}}</td>
      </tr>
      <tr>
        <td style="font-weight: 600; color: #261e67; vertical-align: top; padding: 8px 0;">Message:</td>
        <td style="color: #6f7d7f; line-height: 1.5; padding: 8px 0;">{{nl2br .Message}}</td>
      </tr>
    </table>
  </div>
  <div style="background-color: #001140; padding: 15px; text-align: center; border-top: 1px solid #c0bcf5;">
    <p style="color: #defafe; font-size: 14px; margin: 0 0 10px;">Ready to get started?</p>
    <a href="mailto:{{.Email}}" style="display: inline-block; background-color: #ef476f; color: #e6f2f9; padding: 10px 20px; border-radius: 5px; text-decoration: none; font-weight: 500;">Reply to {{.FirstName}}</a>
    {{- if .Brand.ContactEmail}}
    <p style="color: #6f7d7f; font-size: 12px; margin: 15px 0 0;">{{.Brand.Name}} | <a href="mailto:{{.Brand.ContactEmail}}" style="color: #c0bcf5; text-decoration: none;">{{.Brand.ContactEmail}}</a></p>
    {{- end}}
  </div>
</div>
`
