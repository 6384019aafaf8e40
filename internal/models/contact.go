package models

import (
	"strings"
	"time"
)

// ContactStatus tracks how far an enquiry has been handled.
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusRead      ContactStatus = "read"
	ContactStatusResponded ContactStatus = "responded"
)

// ParseContactStatus normalises user supplied status values. Matching is
// case-insensitive and "replied" is accepted for responded.
func ParseContactStatus(raw string) (ContactStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "new":
		return ContactStatusNew, true
	case "read":
		return ContactStatusRead, true
	case "responded", "replied":
		return ContactStatusResponded, true
	default:
		return "", false
	}
}

// Contact is an enquiry submitted through the public contact form.
type Contact struct {
	ID        string        `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Email     string        `db:"email" json:"email"`
	Phone     string        `db:"phone" json:"phone"`
	Message   string        `db:"message" json:"message"`
	Course    *string       `db:"course" json:"course,omitempty"`
	Status    ContactStatus `db:"status" json:"status"`
	Date      time.Time     `db:"date" json:"date"`
	UpdatedAt time.Time     `db:"updated_at" json:"updatedAt"`
}

// ContactFilter allows listing contacts.
type ContactFilter struct {
	ListOptions
	Status ContactStatus
}
