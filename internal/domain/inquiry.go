package domain

import (
	"context"
	"errors"
)

// Placeholders rendered for optional fields left blank
const (
	CompanyPlaceholder = "Not provided"
	BudgetPlaceholder  = "Not specified"
)

// ErrMissingFields is returned when any of firstName, lastName, email or message is empty
var ErrMissingFields = errors.New("missing required fields")

// InquiryRequest represents a project inquiry submitted from the website contact form
type InquiryRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Company   string `json:"company"` // shown as "Current Website"
	Budget    string `json:"budget"`
	Message   string `json:"message" binding:"required"`
}

// MissingFields lists the JSON names of empty required fields
func (r *InquiryRequest) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
		{"email", r.Email},
		{"message", r.Message},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Validate returns ErrMissingFields if a required field is empty
func (r *InquiryRequest) Validate() error {
	if len(r.MissingFields()) > 0 {
		return ErrMissingFields
	}
	return nil
}

// CompanyOrPlaceholder returns the website or "Not provided"
func (r *InquiryRequest) CompanyOrPlaceholder() string {
	if r.Company == "" {
		return CompanyPlaceholder
	}
	return r.Company
}

// BudgetOrPlaceholder returns the budget or "Not specified"
func (r *InquiryRequest) BudgetOrPlaceholder() string {
	if r.Budget == "" {
		return BudgetPlaceholder
	}
	return r.Budget
}

// OutboundNotification is the rendered email for one inquiry
type OutboundNotification struct {
	FromName string
	From     string
	ReplyTo  string
	To       string
	Subject  string
	Text     string
	HTML     string
}

// SubmitResult is returned after the mail provider accepted the notification
type SubmitResult struct {
	MessageID string `json:"messageId"`
}

// SendError wraps a transport failure (auth, timeout, provider rejection)
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return "failed to send email: " + e.Err.Error()
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// InquiryUsecase defines the interface for inquiry relay operations
type InquiryUsecase interface {
	// SubmitInquiry validates, renders and sends an inquiry in one attempt
	SubmitInquiry(ctx context.Context, req *InquiryRequest) (*SubmitResult, error)
}
