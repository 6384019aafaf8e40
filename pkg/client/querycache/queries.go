package querycache

import (
	"context"
	"strconv"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/pkg/client"
)

// Queries reads public site data through a Cache.
type Queries struct {
	api   *client.Client
	cache *Cache
}

// NewQueries binds api to cache.
func NewQueries(api *client.Client, cache *Cache) *Queries {
	return &Queries{api: api, cache: cache}
}

// Cache exposes the underlying cache for lifecycle hooks.
func (q *Queries) Cache() *Cache {
	return q.cache
}

// TestimonialOptions narrows the public testimonial list.
type TestimonialOptions struct {
	Limit int    `json:"limit,omitempty"`
	Sort  string `json:"sort,omitempty"`
}

// VideoOptions narrows the public video list.
type VideoOptions struct {
	Limit    int  `json:"limit,omitempty"`
	Featured bool `json:"featured,omitempty"`
}

type idFilter struct {
	ID string `json:"id"`
}

func (q *Queries) Courses(ctx context.Context) ([]models.Course, error) {
	return Fetch(ctx, q.cache, client.ResourceCourses, nil, func(ctx context.Context) ([]models.Course, error) {
		page, err := q.api.Courses(ctx, client.ListParams{})
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}

func (q *Queries) Course(ctx context.Context, id string) (*models.Course, error) {
	return Fetch(ctx, q.cache, client.ResourceCourses, idFilter{ID: id}, func(ctx context.Context) (*models.Course, error) {
		return q.api.Course(ctx, id)
	})
}

// Announcements lists announcements, optionally of one category.
func (q *Queries) Announcements(ctx context.Context, category string) ([]models.Announcement, error) {
	filter := map[string]string{}
	if category != "" {
		filter["category"] = category
	}
	return Fetch(ctx, q.cache, client.ResourceAnnouncements, filter, func(ctx context.Context) ([]models.Announcement, error) {
		page, err := q.api.Announcements(ctx, client.ListParams{Filters: filter})
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}

func (q *Queries) Announcement(ctx context.Context, id string) (*models.Announcement, error) {
	return Fetch(ctx, q.cache, client.ResourceAnnouncements, idFilter{ID: id}, func(ctx context.Context) (*models.Announcement, error) {
		return q.api.Announcement(ctx, id)
	})
}

// Team lists active members of memberType, "team" when empty.
func (q *Queries) Team(ctx context.Context, memberType string) ([]models.TeamMember, error) {
	if memberType == "" {
		memberType = string(models.TeamMemberTypeTeam)
	}
	filter := map[string]string{"type": memberType}
	return Fetch(ctx, q.cache, client.ResourceTeam, filter, func(ctx context.Context) ([]models.TeamMember, error) {
		page, err := q.api.Team(ctx, memberType)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}

func (q *Queries) TeamMember(ctx context.Context, id string) (*models.TeamMember, error) {
	return Fetch(ctx, q.cache, client.ResourceTeam, idFilter{ID: id}, func(ctx context.Context) (*models.TeamMember, error) {
		return q.api.TeamMember(ctx, id)
	})
}

// Testimonials lists approved, active testimonials.
func (q *Queries) Testimonials(ctx context.Context, opts TestimonialOptions) ([]models.Testimonial, error) {
	return Fetch(ctx, q.cache, client.ResourceTestimonials, opts, func(ctx context.Context) ([]models.Testimonial, error) {
		page, err := q.api.Testimonials(ctx, client.ListParams{
			Limit:   opts.Limit,
			Sort:    opts.Sort,
			Filters: map[string]string{"isActive": "true", "isApproved": "true"},
		})
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}

// Videos lists active videos, only featured ones when opts.Featured is set.
func (q *Queries) Videos(ctx context.Context, opts VideoOptions) ([]models.Video, error) {
	return Fetch(ctx, q.cache, client.ResourceVideos, opts, func(ctx context.Context) ([]models.Video, error) {
		filters := map[string]string{"isActive": "true"}
		if opts.Featured {
			filters["featured"] = strconv.FormatBool(true)
		}
		page, err := q.api.Videos(ctx, client.ListParams{Limit: opts.Limit, Filters: filters})
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}
