package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

// DashboardCounters lists the aggregate queries behind the admin overview.
type DashboardCounters struct {
	Courses             func(ctx context.Context) (int, error)
	Announcements       func(ctx context.Context) (int, error)
	ContactsByStatus    func(ctx context.Context) (map[models.ContactStatus]int, error)
	ActiveTeamMembers   func(ctx context.Context) (int, error)
	PendingTestimonials func(ctx context.Context) (int, error)
	Videos              func(ctx context.Context) (int, error)
	ActiveSubscribers   func(ctx context.Context) (int, error)
}

// DashboardService aggregates counts for the admin overview.
type DashboardService struct {
	counters DashboardCounters
	logger   *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(counters DashboardCounters, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{counters: counters, logger: logger}
}

// Stats runs every counter concurrently.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	count := func(fn func(context.Context) (int, error), dest *int) {
		if fn == nil {
			return
		}
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return err
			}
			*dest = n
			return nil
		})
	}
	count(s.counters.Courses, &stats.Courses)
	count(s.counters.Announcements, &stats.Announcements)
	count(s.counters.ActiveTeamMembers, &stats.TeamMembers)
	count(s.counters.PendingTestimonials, &stats.PendingTestimonials)
	count(s.counters.Videos, &stats.Videos)
	count(s.counters.ActiveSubscribers, &stats.ActiveSubscribers)
	if s.counters.ContactsByStatus != nil {
		g.Go(func() error {
			byStatus, err := s.counters.ContactsByStatus(gctx)
			if err != nil {
				return err
			}
			stats.Contacts = byStatus
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard stats")
	}
	return stats, nil
}
