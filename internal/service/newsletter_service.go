package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

var errAlreadySubscribed = appErrors.Clone(appErrors.ErrConflict, "this email is already subscribed to our newsletter")

type newsletterRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, sub *models.NewsletterSubscription) error
	Deactivate(ctx context.Context, email string) error
	List(ctx context.Context) ([]models.NewsletterSubscription, error)
	Delete(ctx context.Context, id string) error
}

type welcomeSender interface {
	SendWelcome(ctx context.Context, email string) error
}

// NewsletterRequest carries the subscriber email.
type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterService manages the mailing list.
type NewsletterService struct {
	repo      newsletterRepository
	welcome   welcomeSender
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNewsletterService constructs a NewsletterService. welcome may be nil.
func NewNewsletterService(repo newsletterRepository, welcome welcomeSender, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *NewsletterService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsletterService{repo: repo, welcome: welcome, metrics: metrics, validator: validate, logger: logger}
}

// Subscribe adds an email to the list and sends the welcome mail. Duplicate
// addresses (exact match) are rejected without writing. A failed welcome mail
// does not fail the subscription.
func (s *NewsletterService) Subscribe(ctx context.Context, req NewsletterRequest) (*models.NewsletterSubscription, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subscription")
	}
	if exists {
		return nil, errAlreadySubscribed
	}

	sub := &models.NewsletterSubscription{Email: req.Email, IsActive: true}
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, appErrors.ErrDuplicate) {
			return nil, errAlreadySubscribed
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to subscribe")
	}
	s.metrics.RecordSubmission("newsletter")

	if s.welcome != nil {
		if err := s.welcome.SendWelcome(ctx, sub.Email); err != nil {
			s.logger.Warn("failed to send welcome email", zap.String("subscription_id", sub.ID), zap.Error(err))
		}
	}
	return sub, nil
}

// Unsubscribe marks the email inactive.
func (s *NewsletterService) Unsubscribe(ctx context.Context, req NewsletterRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, req.Email); err != nil {
		return storeError(err, "subscription not found", "unsubscribe")
	}
	return nil
}

// List returns every subscription, newest first.
func (s *NewsletterService) List(ctx context.Context) ([]models.NewsletterSubscription, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subscriptions")
	}
	return subs, nil
}

// Delete removes a subscription.
func (s *NewsletterService) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "subscription not found", "delete subscription")
	}
	return nil
}
