package models

import "time"

// NewsletterSubscription is one mailing list address.
type NewsletterSubscription struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	SubscribedAt time.Time `db:"subscribed_at" json:"subscribedAt"`
	IsActive     bool      `db:"is_active" json:"isActive"`
}

// ExportFormat enumerates supported subscriber export renderings.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult describes a rendered export ready for download.
type ExportResult struct {
	Format    ExportFormat `json:"format"`
	Rows      int          `json:"rows"`
	URL       string       `json:"url"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
