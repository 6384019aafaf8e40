package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

// videoRepoStub keeps videos in insertion order and applies filters and
// paging like the SQL repository does.
type videoRepoStub struct {
	videos  []models.Video
	filters []models.VideoFilter
}

func (r *videoRepoStub) List(ctx context.Context, filter models.VideoFilter) ([]models.Video, int, error) {
	r.filters = append(r.filters, filter)
	matched := make([]models.Video, 0, len(r.videos))
	for _, v := range r.videos {
		if filter.IsActive != nil && v.IsActive != *filter.IsActive {
			continue
		}
		if filter.Featured != nil && v.Featured != *filter.Featured {
			continue
		}
		matched = append(matched, v)
	}
	total := len(matched)
	start := filter.Offset()
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return matched[start:end], total, nil
}

func (r *videoRepoStub) FindByID(ctx context.Context, id string) (*models.Video, error) {
	for _, v := range r.videos {
		if v.ID == id {
			v := v
			return &v, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *videoRepoStub) Create(ctx context.Context, video *models.Video) error {
	video.ID = validID
	r.videos = append(r.videos, *video)
	return nil
}

func (r *videoRepoStub) Update(ctx context.Context, video *models.Video) error {
	for i := range r.videos {
		if r.videos[i].ID == video.ID {
			r.videos[i] = *video
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *videoRepoStub) Delete(ctx context.Context, id string) error {
	for i := range r.videos {
		if r.videos[i].ID == id {
			r.videos = append(r.videos[:i], r.videos[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func TestVideoServicePagesAreDisjoint(t *testing.T) {
	repo := &videoRepoStub{}
	for i := 0; i < 23; i++ {
		repo.videos = append(repo.videos, models.Video{ID: fmt.Sprintf("v%02d", i), IsActive: true})
	}
	svc := NewVideoService(repo, nil, nil, zap.NewNop())

	seen := map[string]int{}
	for page := 1; page <= 3; page++ {
		videos, pagination, err := svc.List(context.Background(), models.VideoFilter{ListOptions: models.ListOptions{Page: page, Limit: 10}}, false)
		require.NoError(t, err)
		require.NotNil(t, pagination)
		assert.Equal(t, 23, pagination.Total)
		assert.Equal(t, 3, pagination.Pages)
		assert.Equal(t, page < 3, pagination.HasMore)
		for _, v := range videos {
			seen[v.ID]++
		}
	}
	assert.Len(t, seen, 23)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestVideoServicePublicListForcesActive(t *testing.T) {
	repo := &videoRepoStub{videos: []models.Video{
		{ID: "a", IsActive: true},
		{ID: "b", IsActive: false},
	}}
	svc := NewVideoService(repo, nil, nil, zap.NewNop())

	videos, _, err := svc.List(context.Background(), models.VideoFilter{IsActive: boolPtr(false)}, false)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "a", videos[0].ID)

	videos, _, err = svc.List(context.Background(), models.VideoFilter{}, true)
	require.NoError(t, err)
	assert.Len(t, videos, 2)
	assert.Nil(t, repo.filters[1].IsActive)
}

func TestVideoServiceDefaultLimit(t *testing.T) {
	repo := &videoRepoStub{}
	svc := NewVideoService(repo, nil, nil, zap.NewNop())

	_, pagination, err := svc.List(context.Background(), models.VideoFilter{}, false)
	require.NoError(t, err)
	assert.Equal(t, videoDefaultLimit, pagination.Limit)
	assert.Equal(t, 1, pagination.Page)
	assert.False(t, pagination.HasMore)
}

func TestVideoServiceHidesInactiveFromPublic(t *testing.T) {
	repo := &videoRepoStub{videos: []models.Video{{ID: validID, Title: "Draft", IsActive: false}}}
	svc := NewVideoService(repo, nil, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), validID, false)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	video, err := svc.Get(context.Background(), validID, true)
	require.NoError(t, err)
	assert.Equal(t, "Draft", video.Title)
}

func TestVideoServiceCreateDefaults(t *testing.T) {
	svc := NewVideoService(&videoRepoStub{}, nil, nil, zap.NewNop())

	video, err := svc.Create(context.Background(), VideoRequest{Title: " Intro ", YoutubeID: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.Equal(t, "Intro", video.Title)
	assert.True(t, video.IsActive)
	assert.False(t, video.Featured)

	_, err = svc.Create(context.Background(), VideoRequest{})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Len(t, appErr.Details, 2)
}
