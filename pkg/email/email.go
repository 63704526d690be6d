package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender delivers a fully rendered message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// Message is a rendered email ready for delivery
type Message struct {
	FromName string
	From     string
	To       string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

var (
	ErrNoRecipient = errors.New("email must have a recipient")
	ErrNoSender    = errors.New("email must have a sender")
	ErrNoContent   = errors.New("email must have a text or HTML body")
	ErrBadHeader   = errors.New("email header contains a line break")
)

// Validate checks the fields every transport needs
func (m *Message) Validate() error {
	switch {
	case m.To == "":
		return ErrNoRecipient
	case m.From == "":
		return ErrNoSender
	case m.Text == "" && m.HTML == "":
		return ErrNoContent
	}
	for _, v := range []string{m.FromName, m.From, m.To, m.ReplyTo} {
		if strings.ContainsAny(v, "\r\n") {
			return ErrBadHeader
		}
	}
	return nil
}

// FromHeader formats the sender as `"Name" <address>`
func (m *Message) FromHeader() string {
	addr := mail.Address{Name: m.FromName, Address: m.From}
	return addr.String()
}

// NewMessageID returns an RFC 5322 Message-ID using the sender's domain
func NewMessageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndexByte(from, '@'); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// buildMIME renders msg as a multipart/alternative message (text first, HTML second)
func buildMIME(msg *Message, messageID string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer

	writeHeader := func(key, value string) {
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	writeHeader("From", msg.FromHeader())
	writeHeader("To", msg.To)
	if msg.ReplyTo != "" {
		replyTo := mail.Address{Address: msg.ReplyTo}
		writeHeader("Reply-To", replyTo.String())
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader("Date", date.Format(time.RFC1123Z))
	writeHeader("Message-ID", messageID)
	writeHeader("MIME-Version", "1.0")

	mw := multipart.NewWriter(&buf)
	writeHeader("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
	buf.WriteString("\r\n")

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create mime part: %w", err)
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("failed to encode mime part: %w", err)
		}
		if err := qp.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode mime part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close mime message: %w", err)
	}
	return buf.Bytes(), nil
}
