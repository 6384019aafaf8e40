package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

func constCount(n int) func(context.Context) (int, error) {
	return func(context.Context) (int, error) { return n, nil }
}

func TestDashboardStats(t *testing.T) {
	svc := NewDashboardService(DashboardCounters{
		Courses:             constCount(4),
		Announcements:       constCount(2),
		ActiveTeamMembers:   constCount(6),
		PendingTestimonials: constCount(1),
		Videos:              constCount(3),
		ActiveSubscribers:   constCount(9),
		ContactsByStatus: func(context.Context) (map[models.ContactStatus]int, error) {
			return map[models.ContactStatus]int{models.ContactStatusNew: 5}, nil
		},
	}, zap.NewNop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Courses)
	assert.Equal(t, 6, stats.TeamMembers)
	assert.Equal(t, 9, stats.ActiveSubscribers)
	assert.Equal(t, 5, stats.Contacts[models.ContactStatusNew])
}

func TestDashboardStatsFailsWhenAnyCounterFails(t *testing.T) {
	svc := NewDashboardService(DashboardCounters{
		Courses: constCount(1),
		Videos:  func(context.Context) (int, error) { return 0, errors.New("timeout") },
	}, nil)

	_, err := svc.Stats(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
