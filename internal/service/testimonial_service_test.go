package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

type testimonialRepoStub struct {
	items      map[string]models.Testimonial
	lastFilter models.TestimonialFilter
	created    *models.Testimonial
}

func (r *testimonialRepoStub) List(ctx context.Context, filter models.TestimonialFilter) ([]models.Testimonial, int, error) {
	r.lastFilter = filter
	out := []models.Testimonial{}
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, len(out), nil
}

func (r *testimonialRepoStub) FindByID(ctx context.Context, id string) (*models.Testimonial, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &item, nil
}

func (r *testimonialRepoStub) Create(ctx context.Context, item *models.Testimonial) error {
	item.ID = validID
	r.created = item
	return nil
}

func (r *testimonialRepoStub) Update(ctx context.Context, item *models.Testimonial) error {
	r.items[item.ID] = *item
	return nil
}

func (r *testimonialRepoStub) Approve(ctx context.Context, id string) error {
	item, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	item.IsApproved = true
	r.items[id] = item
	return nil
}

func (r *testimonialRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func TestTestimonialSubmitIsAlwaysPending(t *testing.T) {
	repo := &testimonialRepoStub{items: map[string]models.Testimonial{}}
	svc := NewTestimonialService(repo, nil, nil, nil, zap.NewNop())

	item, err := svc.Submit(context.Background(), TestimonialRequest{
		Name:       "Rina",
		Content:    "Sangat membantu",
		Rating:     5,
		IsApproved: boolPtr(true),
		IsActive:   boolPtr(false),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.False(t, item.IsApproved)
	assert.True(t, item.IsActive)
	assert.Equal(t, models.DefaultTestimonialRole, item.Role)
	assert.Equal(t, models.DefaultTestimonialImage, item.Image)
}

func TestTestimonialSubmitRejectsRatingOutOfRange(t *testing.T) {
	svc := NewTestimonialService(&testimonialRepoStub{items: map[string]models.Testimonial{}}, nil, nil, nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), TestimonialRequest{Name: "Rina", Content: "ok", Rating: 6})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "rating must be at most 5")
}

func TestTestimonialPublicListForcesVisibility(t *testing.T) {
	repo := &testimonialRepoStub{items: map[string]models.Testimonial{}}
	svc := NewTestimonialService(repo, nil, nil, nil, zap.NewNop())

	_, pagination, err := svc.List(context.Background(), models.TestimonialFilter{IsApproved: boolPtr(false)}, false)
	require.NoError(t, err)
	require.NotNil(t, pagination)
	assert.Equal(t, 10, pagination.Limit)
	require.NotNil(t, repo.lastFilter.IsApproved)
	assert.True(t, *repo.lastFilter.IsApproved)
	require.NotNil(t, repo.lastFilter.IsActive)
	assert.True(t, *repo.lastFilter.IsActive)

	_, _, err = svc.List(context.Background(), models.TestimonialFilter{IsApproved: boolPtr(false)}, true)
	require.NoError(t, err)
	assert.False(t, *repo.lastFilter.IsApproved)
	assert.Nil(t, repo.lastFilter.IsActive)
}

func TestTestimonialGetHidesUnapprovedFromPublic(t *testing.T) {
	repo := &testimonialRepoStub{items: map[string]models.Testimonial{
		validID: {ID: validID, Name: "Budi", IsActive: true},
	}}
	svc := NewTestimonialService(repo, nil, nil, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), validID, false)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "testimonial not available", appErr.Message)

	item, err := svc.Get(context.Background(), validID, true)
	require.NoError(t, err)
	assert.Equal(t, "Budi", item.Name)
}

func TestTestimonialApprove(t *testing.T) {
	repo := &testimonialRepoStub{items: map[string]models.Testimonial{
		validID: {ID: validID, Name: "Budi", IsActive: true},
	}}
	svc := NewTestimonialService(repo, nil, nil, nil, zap.NewNop())

	item, err := svc.Approve(context.Background(), validID)
	require.NoError(t, err)
	assert.True(t, item.IsApproved)

	_, err = svc.Approve(context.Background(), "3b2f7a50-0000-4000-8000-000000000000")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestTestimonialPendingSortsNewestFirst(t *testing.T) {
	repo := &testimonialRepoStub{items: map[string]models.Testimonial{}}
	svc := NewTestimonialService(repo, nil, nil, nil, zap.NewNop())

	_, err := svc.Pending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "-createdAt", repo.lastFilter.Sort)
	require.NotNil(t, repo.lastFilter.IsApproved)
	assert.False(t, *repo.lastFilter.IsApproved)
}
