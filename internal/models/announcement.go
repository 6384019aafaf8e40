package models

import "time"

// AnnouncementCategory groups announcements on the site.
type AnnouncementCategory string

const (
	AnnouncementCategoryCourses  AnnouncementCategory = "Courses"
	AnnouncementCategoryEvents   AnnouncementCategory = "Events"
	AnnouncementCategoryHolidays AnnouncementCategory = "Holidays"
	AnnouncementCategoryGeneral  AnnouncementCategory = "General"
)

// Announcement represents a persisted announcement row.
type Announcement struct {
	ID        string               `db:"id" json:"id"`
	Title     string               `db:"title" json:"title"`
	Content   string               `db:"content" json:"content"`
	Category  AnnouncementCategory `db:"category" json:"category"`
	Date      time.Time            `db:"date" json:"date"`
	CreatedAt time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time            `db:"updated_at" json:"updatedAt"`
}

// AnnouncementFilter allows listing announcements.
type AnnouncementFilter struct {
	ListOptions
	Category string
}
