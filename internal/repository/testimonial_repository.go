package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

const testimonialColumns = "id, name, role, content, rating, image, is_active, is_approved, created_at, updated_at"

var testimonialSorts = map[string]string{
	"name":      "name",
	"rating":    "rating",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// TestimonialRepository persists testimonials.
type TestimonialRepository struct {
	db *sqlx.DB
}

// NewTestimonialRepository constructs a TestimonialRepository.
func NewTestimonialRepository(db *sqlx.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

// List returns testimonials, best rated and newest first by default.
func (r *TestimonialRepository) List(ctx context.Context, filter models.TestimonialFilter) ([]models.Testimonial, int, error) {
	var cond conditions
	if filter.IsApproved != nil {
		cond.eq("is_approved", *filter.IsApproved)
	}
	if filter.IsActive != nil {
		cond.eq("is_active", *filter.IsActive)
	}
	if filter.Rating != nil {
		cond.eq("rating", *filter.Rating)
	}

	items := []models.Testimonial{}
	order := orderBy(filter.Sort, testimonialSorts, "rating DESC, created_at DESC")
	total, err := listAndCount(ctx, r.db, &items, testimonialColumns, "testimonials", cond, order, filter.ListOptions)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByID fetches a testimonial by ID.
func (r *TestimonialRepository) FindByID(ctx context.Context, id string) (*models.Testimonial, error) {
	query := "SELECT " + testimonialColumns + " FROM testimonials WHERE id = $1"
	var item models.Testimonial
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a testimonial.
func (r *TestimonialRepository) Create(ctx context.Context, item *models.Testimonial) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO testimonials (id, name, role, content, rating, image, is_active, is_approved, created_at, updated_at)
		VALUES (:id, :name, :role, :content, :rating, :image, :is_active, :is_approved, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}
	return nil
}

// Update replaces a testimonial.
func (r *TestimonialRepository) Update(ctx context.Context, item *models.Testimonial) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE testimonials SET name = :name, role = :role, content = :content, rating = :rating, image = :image,
		is_active = :is_active, is_approved = :is_approved, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return expectAffected(res, "update testimonial")
}

// Approve marks a testimonial approved.
func (r *TestimonialRepository) Approve(ctx context.Context, id string) error {
	const query = `UPDATE testimonials SET is_approved = TRUE, updated_at = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("approve testimonial: %w", err)
	}
	return expectAffected(res, "approve testimonial")
}

// Delete removes a testimonial.
func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "testimonials", id)
}

// CountPending returns testimonials awaiting approval.
func (r *TestimonialRepository) CountPending(ctx context.Context) (int, error) {
	return countWhere(ctx, r.db, "testimonials", "is_approved = FALSE")
}
