package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

type contactRepository interface {
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, int, error)
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error
	Delete(ctx context.Context, id string) error
}

type contactNotifier interface {
	ContactReceived(ctx context.Context, contact models.Contact)
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
	Course  string `json:"course"`
	Status  string `json:"status" validate:"omitempty,contactstatus"`
}

func (r *ContactRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)
	r.Course = strings.TrimSpace(r.Course)
}

func (r ContactRequest) statusOnly() bool {
	return r.Status != "" && r.Name == "" && r.Email == "" && r.Phone == "" && r.Message == "" && r.Course == ""
}

// ContactStatusRequest changes only the handling status.
type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,contactstatus"`
}

// ContactService handles contact form submissions.
type ContactService struct {
	repo      contactRepository
	notifier  contactNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs a ContactService. The notifier is optional.
func NewContactService(repo contactRepository, notifier contactNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = NewValidator()
	} else {
		registerValidations(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, notifier: notifier, metrics: metrics, validator: validate, logger: logger}
}

// List returns contacts, newest first.
func (s *ContactService) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, *models.Pagination, error) {
	filter.ListOptions = filter.ListOptions.Normalize(0)
	contacts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list contacts")
	}
	return contacts, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get returns a contact by id.
func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "contact not found", "load contact")
	}
	return contact, nil
}

// Submit stores a public enquiry as new and notifies the admins.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*models.Contact, error) {
	req.normalize()
	req.Status = ""
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Status:  models.ContactStatusNew,
	}
	if req.Course != "" {
		course := req.Course
		contact.Course = &course
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save contact")
	}
	s.metrics.RecordSubmission("contact")
	if s.notifier != nil {
		s.notifier.ContactReceived(ctx, *contact)
	}
	return contact, nil
}

// Update replaces a contact. A payload carrying only a status changes just
// the status.
func (s *ContactService) Update(ctx context.Context, id string, req ContactRequest) (*models.Contact, error) {
	req.normalize()
	if req.statusOnly() {
		return s.UpdateStatus(ctx, id, ContactStatusRequest{Status: req.Status})
	}

	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	contact.Name = req.Name
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.Message = req.Message
	contact.Course = nil
	if req.Course != "" {
		course := req.Course
		contact.Course = &course
	}
	if status, ok := models.ParseContactStatus(req.Status); ok {
		contact.Status = status
	}
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, storeError(err, "contact not found", "update contact")
	}
	return contact, nil
}

// UpdateStatus moves a contact to any status.
func (s *ContactService) UpdateStatus(ctx context.Context, id string, req ContactStatusRequest) (*models.Contact, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	status, _ := models.ParseContactStatus(req.Status)
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, storeError(err, "contact not found", "update contact status")
	}
	return s.Get(ctx, id)
}

// Delete removes a contact.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "contact not found", "delete contact")
	}
	return nil
}
