package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/service"
)

// Resource names used for paths and cache keys.
const (
	ResourceCourses       = "courses"
	ResourceAnnouncements = "announcements"
	ResourceContacts      = "contacts"
	ResourceTeam          = "team"
	ResourceTestimonials  = "testimonials"
	ResourceVideos        = "videos"
)

// Courses lists courses.
func (c *Client) Courses(ctx context.Context, params ListParams) (*Page[models.Course], error) {
	return getList[models.Course](ctx, c, "/"+ResourceCourses, params)
}

func (c *Client) Course(ctx context.Context, id string) (*models.Course, error) {
	return getOne[models.Course](ctx, c, http.MethodGet, itemPath(ResourceCourses, id), nil)
}

func (c *Client) CreateCourse(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	return getOne[models.Course](ctx, c, http.MethodPost, "/"+ResourceCourses, req)
}

func (c *Client) UpdateCourse(ctx context.Context, id string, req service.CourseRequest) (*models.Course, error) {
	return getOne[models.Course](ctx, c, http.MethodPut, itemPath(ResourceCourses, id), req)
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	_, err := c.message(ctx, http.MethodDelete, itemPath(ResourceCourses, id), nil)
	return err
}

// Announcements lists announcements; filter by category with
// Filters["category"].
func (c *Client) Announcements(ctx context.Context, params ListParams) (*Page[models.Announcement], error) {
	return getList[models.Announcement](ctx, c, "/"+ResourceAnnouncements, params)
}

func (c *Client) Announcement(ctx context.Context, id string) (*models.Announcement, error) {
	return getOne[models.Announcement](ctx, c, http.MethodGet, itemPath(ResourceAnnouncements, id), nil)
}

func (c *Client) CreateAnnouncement(ctx context.Context, req service.AnnouncementRequest) (*models.Announcement, error) {
	return getOne[models.Announcement](ctx, c, http.MethodPost, "/"+ResourceAnnouncements, req)
}

func (c *Client) UpdateAnnouncement(ctx context.Context, id string, req service.AnnouncementRequest) (*models.Announcement, error) {
	return getOne[models.Announcement](ctx, c, http.MethodPut, itemPath(ResourceAnnouncements, id), req)
}

func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	_, err := c.message(ctx, http.MethodDelete, itemPath(ResourceAnnouncements, id), nil)
	return err
}

// Contacts lists enquiries. Admin only.
func (c *Client) Contacts(ctx context.Context, params ListParams) (*Page[models.Contact], error) {
	return getList[models.Contact](ctx, c, "/"+ResourceContacts, params)
}

func (c *Client) Contact(ctx context.Context, id string) (*models.Contact, error) {
	return getOne[models.Contact](ctx, c, http.MethodGet, itemPath(ResourceContacts, id), nil)
}

// SubmitContact posts the public contact form.
func (c *Client) SubmitContact(ctx context.Context, req service.ContactRequest) (*models.Contact, error) {
	return getOne[models.Contact](ctx, c, http.MethodPost, "/"+ResourceContacts, req)
}

// UpdateContactStatus changes only the status of an enquiry.
func (c *Client) UpdateContactStatus(ctx context.Context, id, status string) (*models.Contact, error) {
	return getOne[models.Contact](ctx, c, http.MethodPut, itemPath(ResourceContacts, id), service.ContactStatusRequest{Status: status})
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	_, err := c.message(ctx, http.MethodDelete, itemPath(ResourceContacts, id), nil)
	return err
}

// Team lists active members; memberType may be "team", "developer" or empty.
func (c *Client) Team(ctx context.Context, memberType string) (*Page[models.TeamMember], error) {
	params := ListParams{}
	if memberType != "" {
		params.Filters = map[string]string{"type": memberType}
	}
	return getList[models.TeamMember](ctx, c, "/"+ResourceTeam, params)
}

// TeamAdmin lists every member including inactive ones.
func (c *Client) TeamAdmin(ctx context.Context) (*Page[models.TeamMember], error) {
	return getList[models.TeamMember](ctx, c, "/"+ResourceTeam+"/admin", ListParams{})
}

func (c *Client) TeamMember(ctx context.Context, id string) (*models.TeamMember, error) {
	return getOne[models.TeamMember](ctx, c, http.MethodGet, itemPath(ResourceTeam, id), nil)
}

func (c *Client) CreateTeamMember(ctx context.Context, req service.TeamMemberRequest) (*models.TeamMember, error) {
	return getOne[models.TeamMember](ctx, c, http.MethodPost, "/"+ResourceTeam, req)
}

func (c *Client) UpdateTeamMember(ctx context.Context, id string, req service.TeamMemberRequest) (*models.TeamMember, error) {
	return getOne[models.TeamMember](ctx, c, http.MethodPut, itemPath(ResourceTeam, id), req)
}

func (c *Client) DeleteTeamMember(ctx context.Context, id string) error {
	_, err := c.message(ctx, http.MethodDelete, itemPath(ResourceTeam, id), nil)
	return err
}

// Testimonials lists testimonials. Without a token only approved, active
// entries come back.
func (c *Client) Testimonials(ctx context.Context, params ListParams) (*Page[models.Testimonial], error) {
	return getList[models.Testimonial](ctx, c, "/"+ResourceTestimonials, params)
}

func (c *Client) Testimonial(ctx context.Context, id string) (*models.Testimonial, error) {
	return getOne[models.Testimonial](ctx, c, http.MethodGet, itemPath(ResourceTestimonials, id), nil)
}

// SubmitTestimonial posts a public testimonial awaiting approval.
func (c *Client) SubmitTestimonial(ctx context.Context, req service.TestimonialRequest) (*models.Testimonial, error) {
	return getOne[models.Testimonial](ctx, c, http.MethodPost, "/"+ResourceTestimonials+"/submit", req)
}

func (c *Client) PendingTestimonials(ctx context.Context) (*Page[models.Testimonial], error) {
	return getList[models.Testimonial](ctx, c, "/"+ResourceTestimonials+"/pending", ListParams{})
}

func (c *Client) ApproveTestimonial(ctx context.Context, id string) (*models.Testimonial, error) {
	return getOne[models.Testimonial](ctx, c, http.MethodPut, itemPath(ResourceTestimonials, id)+"/approve", struct{}{})
}

func (c *Client) CreateTestimonial(ctx context.Context, req service.TestimonialRequest) (*models.Testimonial, error) {
	return getOne[models.Testimonial](ctx, c, http.MethodPost, "/"+ResourceTestimonials, req)
}

func (c *Client) UpdateTestimonial(ctx context.Context, id string, req service.TestimonialRequest) (*models.Testimonial, error) {
	return getOne[models.Testimonial](ctx, c, http.MethodPut, itemPath(ResourceTestimonials, id), req)
}

func (c *Client) DeleteTestimonial(ctx context.Context, id string) error {
	_, err := c.message(ctx, http.MethodDelete, itemPath(ResourceTestimonials, id), nil)
	return err
}

// Videos lists videos; supported filters are featured, category and
// isActive.
func (c *Client) Videos(ctx context.Context, params ListParams) (*Page[models.Video], error) {
	return getList[models.Video](ctx, c, "/"+ResourceVideos, params)
}

func (c *Client) Video(ctx context.Context, id string) (*models.Video, error) {
	return getOne[models.Video](ctx, c, http.MethodGet, itemPath(ResourceVideos, id), nil)
}

func (c *Client) CreateVideo(ctx context.Context, req service.VideoRequest) (*models.Video, error) {
	return getOne[models.Video](ctx, c, http.MethodPost, "/"+ResourceVideos, req)
}

func (c *Client) UpdateVideo(ctx context.Context, id string, req service.VideoRequest) (*models.Video, error) {
	return getOne[models.Video](ctx, c, http.MethodPut, itemPath(ResourceVideos, id), req)
}

func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	_, err := c.message(ctx, http.MethodDelete, itemPath(ResourceVideos, id), nil)
	return err
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	res, err := getOne[models.LoginResponse](ctx, c, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return res, nil
}

// Logout forgets the token. There is no server side session.
func (c *Client) Logout() {
	c.SetToken("")
}

func (c *Client) Me(ctx context.Context) (*models.Admin, error) {
	return getOne[models.Admin](ctx, c, http.MethodGet, "/auth/me", nil)
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	_, err := c.message(ctx, http.MethodPut, "/auth/change-password", models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
	return err
}

// Subscribe adds email to the newsletter.
func (c *Client) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	return getOne[models.NewsletterSubscription](ctx, c, http.MethodPost, "/newsletter/subscribe", service.NewsletterRequest{Email: email})
}

func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	_, err := c.message(ctx, http.MethodPut, "/newsletter/unsubscribe", service.NewsletterRequest{Email: email})
	return err
}

func (c *Client) Subscriptions(ctx context.Context) (*Page[models.NewsletterSubscription], error) {
	return getList[models.NewsletterSubscription](ctx, c, "/newsletter/subscriptions", ListParams{})
}

func (c *Client) DeleteSubscription(ctx context.Context, id string) error {
	_, err := c.message(ctx, http.MethodDelete, itemPath("newsletter/subscription", id), nil)
	return err
}

// ExportSubscribers renders the subscriber list and returns a signed
// download link.
func (c *Client) ExportSubscribers(ctx context.Context, format string) (*models.ExportResult, error) {
	path := "/newsletter/subscriptions/export"
	if format != "" {
		path += "?format=" + url.QueryEscape(format)
	}
	return getOne[models.ExportResult](ctx, c, http.MethodPost, path, nil)
}
