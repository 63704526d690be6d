package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"riverpatch-inquiry-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redirectTransport points every request at the test server
type redirectTransport struct {
	target *url.URL
}

func (rt redirectTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	r.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newResendTestSender(t *testing.T, handler http.HandlerFunc) *email.ResendSender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	return email.NewResendSender("re_test_key", &http.Client{Transport: redirectTransport{target: target}})
}

func TestResendSenderReturnsProviderID(t *testing.T) {
	var got map[string]any
	var auth string

	sender := newResendTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/emails"))
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	})

	id, err := sender.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794", id)
	assert.Equal(t, "Bearer re_test_key", auth)
	assert.Equal(t, `"RiverPatch Studio" <studio@riverpatch.com>`, got["from"])
	assert.Equal(t, []any{"inbox@riverpatch.com"}, got["to"])
	assert.Equal(t, "New Project Inquiry from Ada Lovelace - RiverPatch Studio", got["subject"])
	assert.Equal(t, "<p>Ada Lovelace</p>", got["html"])
	assert.Equal(t, "Name: Ada Lovelace", got["text"])
}

func TestResendSenderProviderRejection(t *testing.T) {
	sender := newResendTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"message":"Invalid from field","name":"validation_error"}`))
	})

	_, err := sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend: failed to send email")
}

func TestResendSenderValidatesBeforeCalling(t *testing.T) {
	called := false
	sender := newResendTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	msg := testMessage()
	msg.To = ""

	_, err := sender.Send(context.Background(), msg)
	assert.ErrorIs(t, err, email.ErrNoRecipient)
	assert.False(t, called)
}
