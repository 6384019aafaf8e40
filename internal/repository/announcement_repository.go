package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

const announcementColumns = "id, title, content, category, date, created_at, updated_at"

var announcementSorts = map[string]string{
	"title":     "title",
	"category":  "category",
	"date":      "date",
	"createdAt": "created_at",
}

// AnnouncementRepository handles persistence for announcements.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository constructs a repository instance.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// List returns announcements newest first unless another order is requested.
func (r *AnnouncementRepository) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error) {
	var cond conditions
	if filter.Category != "" {
		cond.eq("category", filter.Category)
	}

	items := []models.Announcement{}
	order := orderBy(filter.Sort, announcementSorts, "date DESC")
	total, err := listAndCount(ctx, r.db, &items, announcementColumns, "announcements", cond, order, filter.ListOptions)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByID fetches an announcement by ID.
func (r *AnnouncementRepository) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	query := "SELECT " + announcementColumns + " FROM announcements WHERE id = $1"
	var ann models.Announcement
	if err := r.db.GetContext(ctx, &ann, query, id); err != nil {
		return nil, err
	}
	return &ann, nil
}

// Create inserts an announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, ann *models.Announcement) error {
	if ann.ID == "" {
		ann.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if ann.Date.IsZero() {
		ann.Date = now
	}
	if ann.CreatedAt.IsZero() {
		ann.CreatedAt = now
	}
	ann.UpdatedAt = now

	const query = `INSERT INTO announcements (id, title, content, category, date, created_at, updated_at)
		VALUES (:id, :title, :content, :category, :date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, ann); err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

// Update replaces an announcement.
func (r *AnnouncementRepository) Update(ctx context.Context, ann *models.Announcement) error {
	ann.UpdatedAt = time.Now().UTC()
	const query = `UPDATE announcements SET title = :title, content = :content, category = :category, date = :date, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, ann)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	return expectAffected(res, "update announcement")
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "announcements", id)
}

// Count returns the number of announcements.
func (r *AnnouncementRepository) Count(ctx context.Context) (int, error) {
	return countWhere(ctx, r.db, "announcements", "")
}
