package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

const adminColumns = "id, email, name, password_hash, created_at, updated_at"

// AdminRepository persists administrator accounts.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByID fetches an admin by ID.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	query := "SELECT " + adminColumns + " FROM admins WHERE id = $1"
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByEmail fetches an admin by email (case-insensitive).
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := "SELECT " + adminColumns + " FROM admins WHERE LOWER(email) = LOWER($1)"
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create inserts an admin.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now

	const query = `INSERT INTO admins (id, email, name, password_hash, created_at, updated_at)
		VALUES (:id, :email, :name, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return insertError(err, "create admin")
	}
	return nil
}

// UpdatePassword stores a new password hash.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	const query = `UPDATE admins SET password_hash = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, hash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	return expectAffected(res, "update admin password")
}
