package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

const subscriptionColumns = "id, email, subscribed_at, is_active"

// NewsletterRepository persists newsletter subscriptions.
type NewsletterRepository struct {
	db *sqlx.DB
}

// NewNewsletterRepository constructs a NewsletterRepository.
func NewNewsletterRepository(db *sqlx.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// ExistsByEmail reports whether the exact email is already stored.
func (r *NewsletterRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM newsletter_subscriptions WHERE email = $1 LIMIT 1", email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check subscription email: %w", err)
	}
	return true, nil
}

// Create inserts a subscription.
func (r *NewsletterRepository) Create(ctx context.Context, sub *models.NewsletterSubscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now().UTC()
	}
	const query = `INSERT INTO newsletter_subscriptions (id, email, subscribed_at, is_active)
		VALUES (:id, :email, :subscribed_at, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return insertError(err, "create subscription")
	}
	return nil
}

// Deactivate flips is_active off for the given email.
func (r *NewsletterRepository) Deactivate(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE newsletter_subscriptions SET is_active = FALSE WHERE email = $1", email)
	if err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}
	return expectAffected(res, "deactivate subscription")
}

// List returns every subscription, newest first.
func (r *NewsletterRepository) List(ctx context.Context) ([]models.NewsletterSubscription, error) {
	subs := []models.NewsletterSubscription{}
	query := "SELECT " + subscriptionColumns + " FROM newsletter_subscriptions ORDER BY subscribed_at DESC"
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// Delete removes a subscription.
func (r *NewsletterRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "newsletter_subscriptions", id)
}

// CountActive returns the number of active subscriptions.
func (r *NewsletterRepository) CountActive(ctx context.Context) (int, error) {
	return countWhere(ctx, r.db, "newsletter_subscriptions", "is_active = TRUE")
}
