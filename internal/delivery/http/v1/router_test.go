package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"riverpatch-inquiry-backend/config"
	_ "riverpatch-inquiry-backend/docs"
	v1 "riverpatch-inquiry-backend/internal/delivery/http/v1"
	"riverpatch-inquiry-backend/internal/usecase"
	"riverpatch-inquiry-backend/pkg/email"
	"riverpatch-inquiry-backend/pkg/logger"
	"riverpatch-inquiry-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	allowedOrigin = "https://www.riverpatch.com"
	evilOrigin    = "https://evil.example"
	adaBody       = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","message":"Interested in a rebuild."}`
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:    "test",
		AllowedOrigins: config.DefaultAllowedOrigins,
		MaxBodyBytes:   100 << 10,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, sender email.Sender) *gin.Engine {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	renderer, err := usecase.NewInquiryRenderer(usecase.RendererConfig{
		FromName: "RiverPatch Studio",
		From:     "studio@riverpatch.com",
		To:       "inbox@riverpatch.com",
		Location: loc,
		Brand:    usecase.Branding{Name: "RiverPatch Studio"},
	})
	require.NoError(t, err)

	log := logger.Nop()
	return v1.NewRouter(v1.RouterDeps{
		InquiryUC:      usecase.NewInquiryUsecase(renderer, sender, time.Second, log),
		HealthUC:       usecase.NewHealthUsecase(),
		SecurityLogger: security.NewSecurityLogger(zap.NewNop(), "test", "test"),
		Log:            log,
		Config:         cfg,
	})
}

func do(r http.Handler, method, path, origin, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, testConfig(), new(MockSender))

	w := do(r, http.MethodGet, "/", allowedOrigin, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	body := decode(t, w)
	assert.Equal(t, "Server is running", body["status"])
	assert.Equal(t, "enabled", body["cors"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestSubmitPreflight(t *testing.T) {
	r := newTestRouter(t, testConfig(), new(MockSender))

	t.Run("Should grant allowed origin", func(t *testing.T) {
		w := do(r, http.MethodOptions, "/submit", allowedOrigin, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Should not grant unknown origin", func(t *testing.T) {
		w := do(r, http.MethodOptions, "/submit", evilOrigin, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should answer legacy path", func(t *testing.T) {
		w := do(r, http.MethodOptions, "/send-email", allowedOrigin, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSubmitSuccess(t *testing.T) {
	for _, path := range []string{"/submit", "/send-email"} {
		t.Run(path, func(t *testing.T) {
			sender := new(MockSender)
			sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *email.Message) bool {
				return msg.ReplyTo == "ada@example.com" &&
					msg.Subject == "New Project Inquiry from Ada Lovelace - RiverPatch Studio"
			})).Return("<abc@riverpatch.com>", nil).Once()

			r := newTestRouter(t, testConfig(), sender)
			w := do(r, http.MethodPost, path, allowedOrigin, adaBody)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.JSONEq(t, `{"message":"Email sent successfully.","messageId":"<abc@riverpatch.com>"}`, w.Body.String())
			sender.AssertExpectations(t)
		})
	}
}

func TestSubmitWithoutOriginIsAllowed(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("id-1", nil).Once()

	r := newTestRouter(t, testConfig(), sender)
	w := do(r, http.MethodPost, "/submit", "", adaBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	sender.AssertExpectations(t)
}

func TestSubmitRejectsUnknownOrigin(t *testing.T) {
	sender := new(MockSender)
	r := newTestRouter(t, testConfig(), sender)

	w := do(r, http.MethodPost, "/submit", evilOrigin, adaBody)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing fields", `{"firstName":"Ada","email":"ada@example.com"}`, "Missing required fields."},
		{"empty strings", `{"firstName":"","lastName":"","email":"","message":""}`, "Missing required fields."},
		{"empty object", `{}`, "Missing required fields."},
		{"empty body", ``, "Missing required fields."},
		{"malformed json", `{"firstName":`, "Invalid request body."},
		{"wrong type", `{"firstName":42,"lastName":"L","email":"e@x.io","message":"m"}`, "Invalid request body."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := new(MockSender)
			r := newTestRouter(t, testConfig(), sender)

			w := do(r, http.MethodPost, "/submit", allowedOrigin, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["error"])
			assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitBodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 64
	sender := new(MockSender)
	r := newTestRouter(t, cfg, sender)

	body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","message":"` +
		strings.Repeat("x", 256) + `"}`
	w := do(r, http.MethodPost, "/submit", allowedOrigin, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Request body too large.", decode(t, w)["error"])
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitSendFailure(t *testing.T) {
	sendErr := errors.New("535 Username and Password not accepted")

	t.Run("Should hide details by default", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("", sendErr).Once()
		r := newTestRouter(t, testConfig(), sender)

		w := do(r, http.MethodPost, "/submit", allowedOrigin, adaBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to send email."}`, w.Body.String())
	})

	t.Run("Should expose details when enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.ExposeErrorDetails = true
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("", sendErr).Once()
		r := newTestRouter(t, cfg, sender)

		w := do(r, http.MethodPost, "/submit", allowedOrigin, adaBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to send email.","details":"535 Username and Password not accepted"}`, w.Body.String())
	})
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(t, testConfig(), new(MockSender))

	w := do(r, http.MethodGet, "/nope", allowedOrigin, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found.", decode(t, w)["error"])

	w = do(r, http.MethodGet, "/swagger/index.html", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t, testConfig(), new(MockSender))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "3f1c2a4e-8b7d-4c6a-9e2f-1a2b3c4d5e6f")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "3f1c2a4e-8b7d-4c6a-9e2f-1a2b3c4d5e6f", w.Header().Get("X-Request-ID"))
}

func TestSwaggerToggle(t *testing.T) {
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	r := newTestRouter(t, cfg, new(MockSender))

	w := do(r, http.MethodGet, "/swagger/doc.json", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/submit"`)
}
