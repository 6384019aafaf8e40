package models

import "time"

// Course is a class offering shown on the public site.
type Course struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Class       int       `db:"class_level" json:"class"`
	Subject     string    `db:"subject" json:"subject"`
	Description string    `db:"description" json:"description"`
	Duration    string    `db:"duration" json:"duration"`
	Schedule    string    `db:"schedule" json:"schedule"`
	Image       string    `db:"image" json:"image"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CourseFilter captures filtering options for listing courses.
type CourseFilter struct {
	ListOptions
	Class   *int
	Subject string
}
