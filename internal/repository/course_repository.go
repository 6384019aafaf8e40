package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

const courseColumns = "id, title, class_level, subject, description, duration, schedule, image, created_at, updated_at"

var courseSorts = map[string]string{
	"title":     "title",
	"class":     "class_level",
	"subject":   "subject",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching filters along with total count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	var cond conditions
	if filter.Class != nil {
		cond.eq("class_level", *filter.Class)
	}
	if filter.Subject != "" {
		cond.eq("subject", filter.Subject)
	}

	courses := []models.Course{}
	order := orderBy(filter.Sort, courseSorts, "class_level ASC, created_at ASC")
	total, err := listAndCount(ctx, r.db, &courses, courseColumns, "courses", cond, order, filter.ListOptions)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses WHERE id = $1"
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course record.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, title, class_level, subject, description, duration, schedule, image, created_at, updated_at)
		VALUES (:id, :title, :class_level, :subject, :description, :duration, :schedule, :image, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update replaces every mutable column of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET title = :title, class_level = :class_level, subject = :subject, description = :description,
		duration = :duration, schedule = :schedule, image = :image, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return expectAffected(res, "update course")
}

// Delete removes a course permanently.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "courses", id)
}

// Count returns the number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	return countWhere(ctx, r.db, "courses", "")
}
