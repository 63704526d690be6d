package email_test

import (
	"strings"
	"testing"

	"riverpatch-inquiry-backend/pkg/email"

	"github.com/stretchr/testify/assert"
)

func TestMessageValidate(t *testing.T) {
	assert.NoError(t, testMessage().Validate())

	noSender := testMessage()
	noSender.From = ""
	assert.ErrorIs(t, noSender.Validate(), email.ErrNoSender)

	noBody := testMessage()
	noBody.Text, noBody.HTML = "", ""
	assert.ErrorIs(t, noBody.Validate(), email.ErrNoContent)

	injected := testMessage()
	injected.FromName = "Studio\nBcc: x@example.com"
	assert.ErrorIs(t, injected.Validate(), email.ErrBadHeader)
}

func TestNewMessageID(t *testing.T) {
	id := email.NewMessageID("studio@riverpatch.com")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@riverpatch.com>"))

	assert.True(t, strings.HasSuffix(email.NewMessageID("no-domain"), "@localhost>"))
	assert.NotEqual(t, id, email.NewMessageID("studio@riverpatch.com"))
}
