package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

const courseCacheResource = "courses"

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// CourseRequest is the full course payload used for create and update.
type CourseRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Class       int    `json:"class" validate:"required,gte=1,lte=12"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
	Duration    string `json:"duration" validate:"required"`
	Schedule    string `json:"schedule" validate:"required"`
	Image       string `json:"image" validate:"required"`
}

func (r *CourseRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Description = strings.TrimSpace(r.Description)
	r.Duration = strings.TrimSpace(r.Duration)
	r.Schedule = strings.TrimSpace(r.Schedule)
	r.Image = strings.TrimSpace(r.Image)
}

func (r CourseRequest) apply(course *models.Course) {
	course.Title = r.Title
	course.Class = r.Class
	course.Subject = r.Subject
	course.Description = r.Description
	course.Duration = r.Duration
	course.Schedule = r.Schedule
	course.Image = r.Image
}

// CourseService orchestrates course operations.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns courses plus pagination data when a limit was requested.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	filter.ListOptions = filter.ListOptions.Normalize(0)
	courses, total, err := cachedList(ctx, s.cache, listKey(courseCacheResource, filter), func() ([]models.Course, int, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "course not found", "load course")
	}
	return course, nil
}

// Create validates and stores a new course.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	course := &models.Course{}
	req.apply(course)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.cache.Invalidate(ctx, courseCacheResource)
	return course, nil
}

// Update replaces a course after full validation.
func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (*models.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	req.apply(course)
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, storeError(err, "course not found", "update course")
	}
	s.cache.Invalidate(ctx, courseCacheResource)
	return course, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "course not found", "delete course")
	}
	s.cache.Invalidate(ctx, courseCacheResource)
	return nil
}
