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
	videoCacheResource = "videos"
	videoDefaultLimit  = 10
)

type videoRepository interface {
	List(ctx context.Context, filter models.VideoFilter) ([]models.Video, int, error)
	FindByID(ctx context.Context, id string) (*models.Video, error)
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id string) error
}

// VideoRequest is the video payload.
type VideoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	YoutubeID   string `json:"youtubeId" validate:"required"`
	Category    string `json:"category"`
	Featured    *bool  `json:"featured"`
	IsActive    *bool  `json:"isActive"`
}

func (r *VideoRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.YoutubeID = strings.TrimSpace(r.YoutubeID)
	r.Category = strings.TrimSpace(r.Category)
}

func (r VideoRequest) apply(video *models.Video) {
	video.Title = r.Title
	video.Description = r.Description
	video.YoutubeID = r.YoutubeID
	video.Category = r.Category
	video.Featured = boolOr(r.Featured, false)
	video.IsActive = boolOr(r.IsActive, true)
}

// VideoService manages videos.
type VideoService struct {
	repo      videoRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVideoService constructs a VideoService.
func NewVideoService(repo videoRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *VideoService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VideoService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns a page of videos. Non-admin callers only see active videos
// whatever isActive they ask for.
func (s *VideoService) List(ctx context.Context, filter models.VideoFilter, admin bool) ([]models.Video, *models.Pagination, error) {
	filter.ListOptions = filter.ListOptions.Normalize(videoDefaultLimit)
	load := func() ([]models.Video, int, error) {
		return s.repo.List(ctx, filter)
	}

	var (
		videos []models.Video
		total  int
		err    error
	)
	if admin {
		videos, total, err = load()
	} else {
		active := true
		filter.IsActive = &active
		videos, total, err = cachedList(ctx, s.cache, listKey(videoCacheResource, filter), load)
	}
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list videos")
	}
	return videos, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get returns a video; inactive videos are hidden from non-admin callers.
func (s *VideoService) Get(ctx context.Context, id string, admin bool) (*models.Video, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "video not found", "load video")
	}
	if !admin && !video.IsActive {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "video not found")
	}
	return video, nil
}

// Create stores a new video.
func (s *VideoService) Create(ctx context.Context, req VideoRequest) (*models.Video, error) {
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	video := &models.Video{}
	req.apply(video)
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create video")
	}
	s.cache.Invalidate(ctx, videoCacheResource)
	return video, nil
}

// Update replaces a video.
func (s *VideoService) Update(ctx context.Context, id string, req VideoRequest) (*models.Video, error) {
	video, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	req.apply(video)
	if err := s.repo.Update(ctx, video); err != nil {
		return nil, storeError(err, "video not found", "update video")
	}
	s.cache.Invalidate(ctx, videoCacheResource)
	return video, nil
}

// Delete removes a video.
func (s *VideoService) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "video not found", "delete video")
	}
	s.cache.Invalidate(ctx, videoCacheResource)
	return nil
}
