package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

const videoColumns = "id, title, description, youtube_id, category, featured, is_active, created_at, updated_at"

var videoSorts = map[string]string{
	"title":     "title",
	"category":  "category",
	"featured":  "featured",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// VideoRepository persists videos.
type VideoRepository struct {
	db *sqlx.DB
}

// NewVideoRepository constructs a VideoRepository.
func NewVideoRepository(db *sqlx.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// List returns videos, newest first by default.
func (r *VideoRepository) List(ctx context.Context, filter models.VideoFilter) ([]models.Video, int, error) {
	var cond conditions
	if filter.Featured != nil {
		cond.eq("featured", *filter.Featured)
	}
	if filter.Category != "" {
		cond.eq("category", filter.Category)
	}
	if filter.IsActive != nil {
		cond.eq("is_active", *filter.IsActive)
	}

	videos := []models.Video{}
	order := orderBy(filter.Sort, videoSorts, "created_at DESC")
	total, err := listAndCount(ctx, r.db, &videos, videoColumns, "videos", cond, order, filter.ListOptions)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// FindByID fetches a video by ID.
func (r *VideoRepository) FindByID(ctx context.Context, id string) (*models.Video, error) {
	query := "SELECT " + videoColumns + " FROM videos WHERE id = $1"
	var video models.Video
	if err := r.db.GetContext(ctx, &video, query, id); err != nil {
		return nil, err
	}
	return &video, nil
}

// Create inserts a video.
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now

	const query = `INSERT INTO videos (id, title, description, youtube_id, category, featured, is_active, created_at, updated_at)
		VALUES (:id, :title, :description, :youtube_id, :category, :featured, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, video); err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	return nil
}

// Update replaces a video.
func (r *VideoRepository) Update(ctx context.Context, video *models.Video) error {
	video.UpdatedAt = time.Now().UTC()
	const query = `UPDATE videos SET title = :title, description = :description, youtube_id = :youtube_id, category = :category,
		featured = :featured, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, video)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	return expectAffected(res, "update video")
}

// Delete removes a video.
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "videos", id)
}

// Count returns the number of videos.
func (r *VideoRepository) Count(ctx context.Context) (int, error) {
	return countWhere(ctx, r.db, "videos", "")
}
