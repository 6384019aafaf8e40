package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

const contactColumns = "id, name, email, phone, message, course, status, date, updated_at"

var contactSorts = map[string]string{
	"name":   "name",
	"status": "status",
	"date":   "date",
}

// ContactRepository persists contact form submissions.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository constructs a ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns contacts newest first.
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, int, error) {
	var cond conditions
	if filter.Status != "" {
		cond.eq("status", filter.Status)
	}

	contacts := []models.Contact{}
	order := orderBy(filter.Sort, contactSorts, "date DESC")
	total, err := listAndCount(ctx, r.db, &contacts, contactColumns, "contacts", cond, order, filter.ListOptions)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// FindByID fetches a contact by ID.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	query := "SELECT " + contactColumns + " FROM contacts WHERE id = $1"
	var contact models.Contact
	if err := r.db.GetContext(ctx, &contact, query, id); err != nil {
		return nil, err
	}
	return &contact, nil
}

// Create inserts a contact.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if contact.Date.IsZero() {
		contact.Date = now
	}
	if contact.Status == "" {
		contact.Status = models.ContactStatusNew
	}
	contact.UpdatedAt = now

	const query = `INSERT INTO contacts (id, name, email, phone, message, course, status, date, updated_at)
		VALUES (:id, :name, :email, :phone, :message, :course, :status, :date, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// Update replaces a contact.
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	contact.UpdatedAt = time.Now().UTC()
	const query = `UPDATE contacts SET name = :name, email = :email, phone = :phone, message = :message, course = :course,
		status = :status, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, contact)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return expectAffected(res, "update contact")
}

// UpdateStatus changes only the handling status of a contact.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	const query = `UPDATE contacts SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	return expectAffected(res, "update contact status")
}

// Delete removes a contact.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "contacts", id)
}

// CountByStatus groups contacts by status.
func (r *ContactRepository) CountByStatus(ctx context.Context) (map[models.ContactStatus]int, error) {
	var rows []struct {
		Status models.ContactStatus `db:"status"`
		Total  int                  `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS total FROM contacts GROUP BY status`); err != nil {
		return nil, fmt.Errorf("count contacts by status: %w", err)
	}
	result := map[models.ContactStatus]int{
		models.ContactStatusNew:       0,
		models.ContactStatusRead:      0,
		models.ContactStatusResponded: 0,
	}
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}
