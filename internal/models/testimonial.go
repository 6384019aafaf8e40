package models

import "time"

const (
	DefaultTestimonialRole  = "Student"
	DefaultTestimonialImage = "/images/testimonials/default-avatar.png"
)

// Testimonial is a student or parent review.
type Testimonial struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Role       string    `db:"role" json:"role"`
	Content    string    `db:"content" json:"content"`
	Rating     int       `db:"rating" json:"rating"`
	Image      string    `db:"image" json:"image"`
	IsActive   bool      `db:"is_active" json:"isActive"`
	IsApproved bool      `db:"is_approved" json:"isApproved"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Visible reports whether the public may see the testimonial.
func (t Testimonial) Visible() bool {
	return t.IsActive && t.IsApproved
}

// TestimonialFilter allows listing testimonials.
type TestimonialFilter struct {
	ListOptions
	IsActive   *bool
	IsApproved *bool
	Rating     *int
}
