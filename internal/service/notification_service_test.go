package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/pkg/jobs"
	"github.com/noah-isme/coaching-center-api/pkg/mailer"
)

type senderSpy struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (s *senderSpy) Send(ctx context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *senderSpy) messages() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailer.Message(nil), s.sent...)
}

func TestNotificationContactReceivedIsQueued(t *testing.T) {
	sender := &senderSpy{}
	svc := NewNotificationService(sender, "admin@example.com", nil, zap.NewNop(), jobs.QueueConfig{Workers: 1, RetryDelay: time.Millisecond})
	svc.Start(context.Background())

	course := "Biologi"
	svc.ContactReceived(context.Background(), models.Contact{ID: validID, Name: "Sari", Email: "sari@example.com", Phone: "0812", Message: "Halo", Course: &course})
	svc.Stop()

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"admin@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].HTML, "Sari")
	assert.Contains(t, sent[0].HTML, "Biologi")
}

func TestNotificationSkipsWithoutAdminEmail(t *testing.T) {
	sender := &senderSpy{}
	svc := NewNotificationService(sender, "", nil, zap.NewNop(), jobs.QueueConfig{})
	svc.Start(context.Background())
	svc.ContactReceived(context.Background(), models.Contact{ID: validID})
	svc.Stop()

	assert.Empty(t, sender.messages())
}

func TestNotificationSendWelcomeReturnsSenderError(t *testing.T) {
	sender := &senderSpy{err: errors.New("smtp down")}
	svc := NewNotificationService(sender, "", nil, zap.NewNop(), jobs.QueueConfig{})

	err := svc.SendWelcome(context.Background(), "ortu@example.com")
	require.Error(t, err)
	require.Len(t, sender.messages(), 1)
	assert.Equal(t, []string{"ortu@example.com"}, sender.messages()[0].To)
}
