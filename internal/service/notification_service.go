package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/pkg/jobs"
	"github.com/noah-isme/coaching-center-api/pkg/mailer"
)

const (
	emailKindWelcome = "welcome"
	emailKindContact = "contact_notification"
)

// NotificationService sends transactional email. Welcome mails go out inline;
// admin contact notifications run on a background queue with retries.
type NotificationService struct {
	sender     mailer.Sender
	adminEmail string
	queue      *jobs.Queue
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewNotificationService wires the sender to a dedicated email queue.
func NewNotificationService(sender mailer.Sender, adminEmail string, metrics *MetricsService, logger *zap.Logger, queueCfg jobs.QueueConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	queueCfg.Logger = logger
	s := &NotificationService{sender: sender, adminEmail: adminEmail, metrics: metrics, logger: logger}
	s.queue = jobs.NewQueue("email", s.deliver, queueCfg)
	return s
}

// Start launches the queue workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains queued notifications and stops the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// SendWelcome delivers the newsletter welcome mail synchronously.
func (s *NotificationService) SendWelcome(ctx context.Context, email string) error {
	msg, err := mailer.WelcomeMessage(email)
	if err == nil {
		err = s.sender.Send(ctx, msg)
	}
	s.metrics.RecordEmail(emailKindWelcome, err)
	return err
}

// ContactReceived queues a notification for the site admin. Failures are
// logged only.
func (s *NotificationService) ContactReceived(_ context.Context, contact models.Contact) {
	if s.adminEmail == "" {
		s.logger.Debug("admin email not configured, skipping contact notification", zap.String("contact_id", contact.ID))
		return
	}
	details := mailer.ContactDetails{
		Name:    contact.Name,
		Email:   contact.Email,
		Phone:   contact.Phone,
		Message: contact.Message,
	}
	if contact.Course != nil {
		details.Course = *contact.Course
	}
	msg, err := mailer.ContactNotification(s.adminEmail, details)
	if err != nil {
		s.logger.Error("failed to render contact notification", zap.String("contact_id", contact.ID), zap.Error(err))
		return
	}
	if err := s.queue.Enqueue(jobs.Job{Type: emailKindContact, Payload: msg}); err != nil {
		s.metrics.RecordEmail(emailKindContact, err)
		s.logger.Warn("failed to queue contact notification", zap.String("contact_id", contact.ID), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(mailer.Message)
	if !ok {
		s.logger.Error("unexpected email job payload", zap.String("job_id", job.ID), zap.String("type", fmt.Sprintf("%T", job.Payload)))
		return nil
	}
	err := s.sender.Send(ctx, msg)
	s.metrics.RecordEmail(job.Type, err)
	return err
}
