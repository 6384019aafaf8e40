package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

const announcementCacheResource = "announcements"

type announcementRepository interface {
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error)
	FindByID(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, ann *models.Announcement) error
	Update(ctx context.Context, ann *models.Announcement) error
	Delete(ctx context.Context, id string) error
}

// AnnouncementRequest is the announcement payload. Date defaults to now on
// create and keeps the stored value on update.
type AnnouncementRequest struct {
	Title    string     `json:"title" validate:"required"`
	Content  string     `json:"content" validate:"required"`
	Category string     `json:"category" validate:"required,oneof=Courses Events Holidays General"`
	Date     *time.Time `json:"date"`
}

// AnnouncementService manages announcements.
type AnnouncementService struct {
	repo      announcementRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo announcementRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, *models.Pagination, error) {
	filter.ListOptions = filter.ListOptions.Normalize(0)
	items, total, err := cachedList(ctx, s.cache, listKey(announcementCacheResource, filter), func() ([]models.Announcement, int, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	return items, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get returns an announcement by id.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	ann, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "announcement not found", "load announcement")
	}
	return ann, nil
}

// Create stores a new announcement.
func (s *AnnouncementService) Create(ctx context.Context, req AnnouncementRequest) (*models.Announcement, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	ann := &models.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Category: models.AnnouncementCategory(req.Category),
	}
	if req.Date != nil {
		ann.Date = req.Date.UTC()
	}
	if err := s.repo.Create(ctx, ann); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create announcement")
	}
	s.cache.Invalidate(ctx, announcementCacheResource)
	return ann, nil
}

// Update replaces an announcement.
func (s *AnnouncementService) Update(ctx context.Context, id string, req AnnouncementRequest) (*models.Announcement, error) {
	ann, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	ann.Title = req.Title
	ann.Content = req.Content
	ann.Category = models.AnnouncementCategory(req.Category)
	if req.Date != nil {
		ann.Date = req.Date.UTC()
	}
	if err := s.repo.Update(ctx, ann); err != nil {
		return nil, storeError(err, "announcement not found", "update announcement")
	}
	s.cache.Invalidate(ctx, announcementCacheResource)
	return ann, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "announcement not found", "delete announcement")
	}
	s.cache.Invalidate(ctx, announcementCacheResource)
	return nil
}
