package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

const (
	testimonialCacheResource = "testimonials"
	testimonialDefaultLimit  = 10
)

type testimonialRepository interface {
	List(ctx context.Context, filter models.TestimonialFilter) ([]models.Testimonial, int, error)
	FindByID(ctx context.Context, id string) (*models.Testimonial, error)
	Create(ctx context.Context, item *models.Testimonial) error
	Update(ctx context.Context, item *models.Testimonial) error
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// TestimonialRequest is the testimonial payload.
type TestimonialRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Role       string `json:"role"`
	Content    string `json:"content" validate:"required"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Image      string `json:"image"`
	IsActive   *bool  `json:"isActive"`
	IsApproved *bool  `json:"isApproved"`
}

func (r *TestimonialRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Content = strings.TrimSpace(r.Content)
}

func (r TestimonialRequest) apply(item *models.Testimonial) {
	item.Name = r.Name
	item.Role = stringOr(r.Role, models.DefaultTestimonialRole)
	item.Content = r.Content
	item.Rating = r.Rating
	item.Image = stringOr(r.Image, models.DefaultTestimonialImage)
	item.IsActive = boolOr(r.IsActive, true)
	item.IsApproved = boolOr(r.IsApproved, false)
}

// TestimonialService manages testimonials and their approval.
type TestimonialService struct {
	repo      testimonialRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTestimonialService constructs a TestimonialService.
func NewTestimonialService(repo testimonialRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TestimonialService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestimonialService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns testimonials. Callers that are not admins only ever see
// approved, active entries.
func (s *TestimonialService) List(ctx context.Context, filter models.TestimonialFilter, admin bool) ([]models.Testimonial, *models.Pagination, error) {
	filter.ListOptions = filter.ListOptions.Normalize(testimonialDefaultLimit)
	load := func() ([]models.Testimonial, int, error) {
		return s.repo.List(ctx, filter)
	}

	var (
		items []models.Testimonial
		total int
		err   error
	)
	if admin {
		items, total, err = load()
	} else {
		yes := true
		filter.IsApproved = &yes
		filter.IsActive = &yes
		items, total, err = cachedList(ctx, s.cache, listKey(testimonialCacheResource, filter), load)
	}
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list testimonials")
	}
	return items, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// Pending returns unapproved testimonials, newest first.
func (s *TestimonialService) Pending(ctx context.Context) ([]models.Testimonial, error) {
	no := false
	items, _, err := s.repo.List(ctx, models.TestimonialFilter{
		ListOptions: models.ListOptions{Sort: "-createdAt"},
		IsApproved:  &no,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending testimonials")
	}
	return items, nil
}

// Get returns a testimonial; hidden entries are reported as unavailable to
// non-admin callers.
func (s *TestimonialService) Get(ctx context.Context, id string, admin bool) (*models.Testimonial, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "testimonial not found", "load testimonial")
	}
	if !admin && !item.Visible() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "testimonial not available")
	}
	return item, nil
}

// Create stores a testimonial written by an admin.
func (s *TestimonialService) Create(ctx context.Context, req TestimonialRequest) (*models.Testimonial, error) {
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	item := &models.Testimonial{}
	req.apply(item)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create testimonial")
	}
	s.cache.Invalidate(ctx, testimonialCacheResource)
	return item, nil
}

// Submit stores a public testimonial awaiting approval.
func (s *TestimonialService) Submit(ctx context.Context, req TestimonialRequest) (*models.Testimonial, error) {
	active, approved := true, false
	req.IsActive = &active
	req.IsApproved = &approved
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	item := &models.Testimonial{}
	req.apply(item)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit testimonial")
	}
	s.metrics.RecordSubmission("testimonial")
	return item, nil
}

// Update replaces a testimonial.
func (s *TestimonialService) Update(ctx context.Context, id string, req TestimonialRequest) (*models.Testimonial, error) {
	item, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	req.apply(item)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, storeError(err, "testimonial not found", "update testimonial")
	}
	s.cache.Invalidate(ctx, testimonialCacheResource)
	return item, nil
}

// Approve publishes a pending testimonial.
func (s *TestimonialService) Approve(ctx context.Context, id string) (*models.Testimonial, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	if err := s.repo.Approve(ctx, id); err != nil {
		return nil, storeError(err, "testimonial not found", "approve testimonial")
	}
	s.cache.Invalidate(ctx, testimonialCacheResource)
	return s.Get(ctx, id, true)
}

// Delete removes a testimonial.
func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "testimonial not found", "delete testimonial")
	}
	s.cache.Invalidate(ctx, testimonialCacheResource)
	return nil
}
