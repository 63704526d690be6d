package v1

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"riverpatch-inquiry-backend/internal/delivery/http/middleware"
	"riverpatch-inquiry-backend/internal/delivery/http/response"
	"riverpatch-inquiry-backend/internal/domain"
	"riverpatch-inquiry-backend/pkg/apperror"
	"riverpatch-inquiry-backend/pkg/security"
	"riverpatch-inquiry-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingFields  = "Missing required fields."
	msgInvalidBody    = "Invalid request body."
	msgPayloadTooBig  = "Request body too large."
	msgSendFailed     = "Failed to send email."
	msgInquiryRelayed = "Email sent successfully."
)

type InquiryHandler struct {
	inquiryUC domain.InquiryUsecase
	secLog    *security.SecurityLogger
	log       *slog.Logger
}

// NewInquiryHandler registers the public inquiry routes. /send-email is kept for
// older builds of the website form.
func NewInquiryHandler(r gin.IRoutes, policy *middleware.OriginPolicy, inquiryUC domain.InquiryUsecase, secLog *security.SecurityLogger, log *slog.Logger) {
	handler := &InquiryHandler{
		inquiryUC: inquiryUC,
		secLog:    secLog,
		log:       log,
	}

	preflight := middleware.Preflight(policy, "POST, OPTIONS", "Content-Type")

	for _, path := range []string{"/submit", "/send-email"} {
		r.OPTIONS(path, preflight)
		r.POST(path, handler.SubmitInquiry)
	}
}

// SubmitInquiry godoc
// @Summary      Submit Project Inquiry
// @Description  Relay a contact form inquiry to the studio mailbox. One email is sent per call.
// @Tags         inquiry
// @Accept       json
// @Produce      json
// @Param        inquiry  body      domain.InquiryRequest     true  "Inquiry"
// @Success      200      {object}  response.SubmitResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      403      "Origin not allowed"
// @Failure      413      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /submit [post]
func (h *InquiryHandler) SubmitInquiry(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)

	var req domain.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(h.bindError(c, &req, err))
		return
	}

	h.log.InfoContext(ctx, "Inquiry received",
		"origin", c.GetHeader("Origin"),
		"email", security.MaskEmail(req.Email),
		"has_company", req.Company != "",
		"has_budget", req.Budget != "",
		"message_length", len(req.Message),
		"request_id", requestID,
	)

	result, err := h.inquiryUC.SubmitInquiry(ctx, &req)
	if err != nil {
		var sendErr *domain.SendError
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			h.secLog.LogValidationFailed(ctx, req.Email, c.ClientIP(), requestID, req.MissingFields())
			c.Error(apperror.BadRequest(msgMissingFields))
		case errors.As(err, &sendErr):
			h.secLog.LogSendFailed(ctx, req.Email, requestID, sendErr.Err)
			c.Error(apperror.New(http.StatusInternalServerError, msgSendFailed, sendErr.Err))
		default:
			c.Error(apperror.Internal(err))
		}
		return
	}

	h.secLog.LogInquiryRelayed(ctx, req.Email, requestID, result.MessageID)
	response.Success(c, http.StatusOK, response.SubmitResponse{
		Message:   msgInquiryRelayed,
		MessageID: result.MessageID,
	})
}

// bindError classifies a JSON binding failure
func (h *InquiryHandler) bindError(c *gin.Context, req *domain.InquiryRequest, err error) *apperror.AppError {
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.secLog.LogPayloadRejected(ctx, c.ClientIP(), requestID, "body exceeds limit")
		return apperror.PayloadTooLarge(msgPayloadTooBig)
	}

	// An empty body carries no fields at all.
	if errors.Is(err, io.EOF) {
		h.secLog.LogValidationFailed(ctx, "", c.ClientIP(), requestID, (&domain.InquiryRequest{}).MissingFields())
		return apperror.BadRequest(msgMissingFields)
	}

	if fields := validation.FailedFields(err); fields != nil {
		h.secLog.LogValidationFailed(ctx, req.Email, c.ClientIP(), requestID, fields)
		return apperror.BadRequest(msgMissingFields)
	}

	h.secLog.LogPayloadRejected(ctx, c.ClientIP(), requestID, "malformed json")
	return apperror.New(http.StatusBadRequest, msgInvalidBody, err)
}
