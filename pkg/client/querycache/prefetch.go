package querycache

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

// FeaturedVideoLimit is how many featured videos the home page shows.
const FeaturedVideoLimit = 3

// PrefetchEssential warms the data every page needs: courses, team members
// and featured videos. The three loads run concurrently; the first failure
// is returned after all have finished.
func (q *Queries) PrefetchEssential(ctx context.Context) error {
	logger := q.cache.cfg.Logger
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		courses, err := q.Courses(gctx)
		if err == nil {
			logger.Debug("prefetched courses", zap.Int("count", len(courses)))
		}
		return err
	})
	g.Go(func() error {
		team, err := q.Team(gctx, string(models.TeamMemberTypeTeam))
		if err == nil {
			logger.Debug("prefetched team", zap.Int("count", len(team)))
		}
		return err
	})
	g.Go(func() error {
		videos, err := q.Videos(gctx, VideoOptions{Limit: FeaturedVideoLimit, Featured: true})
		if err == nil {
			logger.Debug("prefetched featured videos", zap.Int("count", len(videos)))
		}
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Warn("prefetch failed", zap.Error(err))
		return err
	}
	return nil
}
