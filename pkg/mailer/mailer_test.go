package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/noah-isme/coaching-center-api/pkg/config"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestNewWithoutConfigIsDisabled(t *testing.T) {
	sender := New(config.SMTPConfig{})
	err := sender.Send(context.Background(), Message{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSMTPSenderSend(t *testing.T) {
	d := &fakeDialer{}
	sender := &SMTPSender{dialer: d, from: "site@example.com"}

	msg, err := WelcomeMessage("reader@example.com")
	require.NoError(t, err)
	require.NoError(t, sender.Send(context.Background(), msg))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"reader@example.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Welcome to Our Newsletter!"}, d.sent[0].GetHeader("Subject"))

	d.err = errors.New("connection refused")
	assert.Error(t, sender.Send(context.Background(), msg))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sender.Send(ctx, msg), context.Canceled)
}

func TestContactNotificationEscapesInput(t *testing.T) {
	msg, err := ContactNotification("admin@example.com", ContactDetails{
		Name:    "<script>x</script>",
		Email:   "a@example.com",
		Phone:   "123",
		Message: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@example.com"}, msg.To)
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.NotContains(t, msg.HTML, "Course:")
}
