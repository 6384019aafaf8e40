package models

// DashboardStats summarises content counts for the admin overview.
type DashboardStats struct {
	Courses             int                   `json:"courses"`
	Announcements       int                   `json:"announcements"`
	Contacts            map[ContactStatus]int `json:"contacts"`
	TeamMembers         int                   `json:"teamMembers"`
	PendingTestimonials int                   `json:"pendingTestimonials"`
	Videos              int                   `json:"videos"`
	ActiveSubscribers   int                   `json:"activeSubscribers"`
}
