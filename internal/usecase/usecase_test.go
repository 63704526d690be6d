package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"riverpatch-inquiry-backend/internal/domain"
	"riverpatch-inquiry-backend/internal/usecase"
	"riverpatch-inquiry-backend/pkg/email"
	"riverpatch-inquiry-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock mail transport
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func newTestRenderer(t *testing.T) *usecase.InquiryRenderer {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	r, err := usecase.NewInquiryRenderer(usecase.RendererConfig{
		FromName: "RiverPatch Studio",
		From:     "studio@riverpatch.com",
		To:       "inbox@riverpatch.com",
		Location: loc,
		Brand: usecase.Branding{
			Name:         "RiverPatch Studio",
			Tagline:      "Elevate your business with Smart Web Solutions",
			ContactEmail: "team@riverpatch.com",
		},
	})
	require.NoError(t, err)
	return r
}

func validInquiry() *domain.InquiryRequest {
	return &domain.InquiryRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Message:   "Interested in a rebuild.",
	}
}

func TestSubmitInquiryMissingFields(t *testing.T) {
	cases := map[string]func(r *domain.InquiryRequest){
		"firstName": func(r *domain.InquiryRequest) { r.FirstName = "" },
		"lastName":  func(r *domain.InquiryRequest) { r.LastName = "" },
		"email":     func(r *domain.InquiryRequest) { r.Email = "" },
		"message":   func(r *domain.InquiryRequest) { r.Message = "" },
		"all":       func(r *domain.InquiryRequest) { *r = domain.InquiryRequest{} },
	}

	for name, mutate := range cases {
		t.Run("Should reject missing "+name, func(t *testing.T) {
			sender := new(MockSender)
			uc := usecase.NewInquiryUsecase(newTestRenderer(t), sender, time.Second, logger.Nop())

			req := validInquiry()
			mutate(req)

			res, err := uc.SubmitInquiry(context.Background(), req)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, domain.ErrMissingFields)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitInquirySendsOnce(t *testing.T) {
	sender := new(MockSender)
	uc := usecase.NewInquiryUsecase(newTestRenderer(t), sender, 9*time.Second, logger.Nop())

	sender.On("Send", mock.Anything, mock.AnythingOfType("*email.Message")).
		Return("<abc@riverpatch.com>", nil).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, ok := ctx.Deadline()
			require.True(t, ok, "send must be bounded by a deadline")
			assert.WithinDuration(t, time.Now().Add(9*time.Second), deadline, time.Second)

			msg := args.Get(1).(*email.Message)
			assert.Equal(t, "RiverPatch Studio", msg.FromName)
			assert.Equal(t, "studio@riverpatch.com", msg.From)
			assert.Equal(t, "inbox@riverpatch.com", msg.To)
			assert.Equal(t, "ada@example.com", msg.ReplyTo)
			assert.Equal(t, "New Project Inquiry from Ada Lovelace - RiverPatch Studio", msg.Subject)
			assert.Contains(t, msg.Text, "Current Website: Not provided")
			assert.Contains(t, msg.Text, "Budget: Not specified")
		}).
		Once()

	res, err := uc.SubmitInquiry(context.Background(), validInquiry())
	require.NoError(t, err)
	assert.Equal(t, "<abc@riverpatch.com>", res.MessageID)
	sender.AssertExpectations(t)
}

func TestSubmitInquiryIsNotIdempotent(t *testing.T) {
	sender := new(MockSender)
	uc := usecase.NewInquiryUsecase(newTestRenderer(t), sender, time.Second, logger.Nop())

	sender.On("Send", mock.Anything, mock.Anything).Return("id-1", nil).Once()
	sender.On("Send", mock.Anything, mock.Anything).Return("id-2", nil).Once()

	first, err := uc.SubmitInquiry(context.Background(), validInquiry())
	require.NoError(t, err)
	second, err := uc.SubmitInquiry(context.Background(), validInquiry())
	require.NoError(t, err)

	assert.NotEqual(t, first.MessageID, second.MessageID)
	sender.AssertNumberOfCalls(t, "Send", 2)
}

func TestSubmitInquiryTransportFailure(t *testing.T) {
	sender := new(MockSender)
	uc := usecase.NewInquiryUsecase(newTestRenderer(t), sender, time.Second, logger.Nop())

	injected := errors.New("535 Username and Password not accepted")
	sender.On("Send", mock.Anything, mock.Anything).Return("", injected).Once()

	res, err := uc.SubmitInquiry(context.Background(), validInquiry())
	assert.Nil(t, res)

	var sendErr *domain.SendError
	require.True(t, errors.As(err, &sendErr))
	assert.ErrorIs(t, err, injected)
}

func TestSubmitInquiryTimeout(t *testing.T) {
	sender := new(MockSender)
	uc := usecase.NewInquiryUsecase(newTestRenderer(t), sender, 50*time.Millisecond, logger.Nop())

	sender.On("Send", mock.Anything, mock.Anything).
		Return("", context.DeadlineExceeded).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Once()

	start := time.Now()
	_, err := uc.SubmitInquiry(context.Background(), validInquiry())
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	var sendErr *domain.SendError
	require.True(t, errors.As(err, &sendErr))
	assert.Contains(t, err.Error(), "timed out")
}

func TestSubmitInquiryIgnoresCallerCancellation(t *testing.T) {
	sender := new(MockSender)
	uc := usecase.NewInquiryUsecase(newTestRenderer(t), sender, time.Second, logger.Nop())

	sender.On("Send", mock.Anything, mock.Anything).
		Return("id-1", nil).
		Run(func(args mock.Arguments) {
			assert.NoError(t, args.Get(0).(context.Context).Err())
		}).
		Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := uc.SubmitInquiry(ctx, validInquiry())
	require.NoError(t, err)
	assert.Equal(t, "id-1", res.MessageID)
}

func TestHealthCheck(t *testing.T) {
	status := usecase.NewHealthUsecase().Check(context.Background())

	assert.Equal(t, "Server is running", status.Status)
	assert.Equal(t, "enabled", status.CORS)

	ts, err := time.Parse(time.RFC3339Nano, status.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
}
